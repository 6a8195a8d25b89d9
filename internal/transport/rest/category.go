package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/service/category"
)

type categoryService interface {
	Create(ctx context.Context, input category.CreateCategoryInput) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// CategoryHandler serves category endpoints.
type CategoryHandler struct {
	svc categoryService
	log *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(svc categoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: logger.With("handler", "category")}
}

type createCategoryRequest struct {
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	ReadRestricted bool    `json:"readRestricted"`
}

type categoryResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    *string `json:"description,omitempty"`
	ReadRestricted bool    `json:"readRestricted"`
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateCategoryInput{
		Name:           req.Name,
		Description:    req.Description,
		ReadRestricted: req.ReadRestricted,
	})
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(*c))
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		Slug:           c.Slug,
		Description:    c.Description,
		ReadRestricted: c.ReadRestricted,
	}
}
