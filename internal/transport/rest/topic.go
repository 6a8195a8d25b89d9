package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/service/topic"
)

type topicService interface {
	CreateTopic(ctx context.Context, input topic.CreateTopicInput) (*domain.Topic, error)
	GetTopic(ctx context.Context, topicID uuid.UUID) (*domain.Topic, error)
}

// TopicHandler serves topic and private message endpoints.
type TopicHandler struct {
	svc topicService
	log *slog.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(svc topicService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{svc: svc, log: logger.With("handler", "topic")}
}

// createTopicRequest mirrors the form fields of the composer: recipient
// lists are comma separated and auto_close_time is in hours.
type createTopicRequest struct {
	Title           string `json:"title"`
	Raw             string `json:"raw"`
	Archetype       string `json:"archetype"`
	TargetUsernames string `json:"targetUsernames"`
	TargetEmails    string `json:"targetEmails"`
	Category        string `json:"category"`
	AutoCloseTime   string `json:"autoCloseTime"`
}

type topicResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Slug           string            `json:"slug"`
	Archetype      string            `json:"archetype"`
	UserID         string            `json:"userId"`
	PostsCount     int               `json:"postsCount"`
	Category       *categoryResponse `json:"category,omitempty"`
	FirstPost      *postResponse     `json:"firstPost,omitempty"`
	PublicTimer    *timerResponse    `json:"publicTopicTimer,omitempty"`
	AllowedUserIDs []string          `json:"allowedUserIds,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type postResponse struct {
	ID         string    `json:"id"`
	PostNumber int       `json:"postNumber"`
	Raw        string    `json:"raw"`
	CreatedAt  time.Time `json:"createdAt"`
}

type timerResponse struct {
	StatusType string    `json:"statusType"`
	ExecuteAt  time.Time `json:"executeAt"`
}

// Create handles POST /topics.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.svc.CreateTopic(r.Context(), topic.CreateTopicInput{
		Title:           req.Title,
		Raw:             req.Raw,
		Archetype:       domain.Archetype(req.Archetype),
		TargetUsernames: req.TargetUsernames,
		TargetEmails:    req.TargetEmails,
		Category:        req.Category,
		AutoCloseTime:   req.AutoCloseTime,
	})
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	w.Header().Set("Location", "/topics/"+t.ID.String())
	writeJSON(w, http.StatusCreated, toTopicResponse(t))
}

// Get handles GET /topics/{id}.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	t, err := h.svc.GetTopic(r.Context(), id)
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTopicResponse(t))
}

func toTopicResponse(t *domain.Topic) topicResponse {
	resp := topicResponse{
		ID:         t.ID.String(),
		Title:      t.Title,
		Slug:       t.Slug,
		Archetype:  t.Archetype.String(),
		UserID:     t.UserID.String(),
		PostsCount: t.PostsCount,
		CreatedAt:  t.CreatedAt,
	}
	if t.Category != nil {
		c := toCategoryResponse(*t.Category)
		resp.Category = &c
	}
	if p := t.FirstPost; p != nil {
		resp.FirstPost = &postResponse{
			ID:         p.ID.String(),
			PostNumber: p.PostNumber,
			Raw:        p.Raw,
			CreatedAt:  p.CreatedAt,
		}
	}
	if tm := t.PublicTimer; tm != nil {
		resp.PublicTimer = &timerResponse{
			StatusType: tm.StatusType.String(),
			ExecuteAt:  tm.ExecuteAt,
		}
	}
	for _, id := range t.AllowedUserIDs {
		resp.AllowedUserIDs = append(resp.AllowedUserIDs, id.String())
	}
	return resp
}
