package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/service/sitesetting"
)

type siteSettingService interface {
	Get(ctx context.Context) (domain.SiteSettings, error)
	Update(ctx context.Context, input sitesetting.UpdateInput) (domain.SiteSettings, error)
}

// SiteSettingHandler serves the admin site settings endpoints.
type SiteSettingHandler struct {
	svc siteSettingService
	log *slog.Logger
}

// NewSiteSettingHandler creates a SiteSettingHandler.
func NewSiteSettingHandler(svc siteSettingService, logger *slog.Logger) *SiteSettingHandler {
	return &SiteSettingHandler{svc: svc, log: logger.With("handler", "site_setting")}
}

type siteSettingsResponse struct {
	MinTrustToCreateTopic         int        `json:"minTrustToCreateTopic"`
	MinTrustToSendMessages        int        `json:"minTrustToSendMessages"`
	MinTrustToSendEmailMessages   int        `json:"minTrustToSendEmailMessages"`
	AllowDuplicateTopicTitles     bool       `json:"allowDuplicateTopicTitles"`
	EnableStagedUsers             bool       `json:"enableStagedUsers"`
	EnablePrivateEmailMessages    bool       `json:"enablePrivateEmailMessages"`
	MinTopicTitleLength           int        `json:"minTopicTitleLength"`
	MaxTopicTitleLength           int        `json:"maxTopicTitleLength"`
	MinPersonalMessageTitleLength int        `json:"minPersonalMessageTitleLength"`
	MinPostLength                 int        `json:"minPostLength"`
	MinPersonalMessagePostLength  int        `json:"minPersonalMessagePostLength"`
	MaxTargetRecipients           int        `json:"maxTargetRecipients"`
	UpdatedAt                     *time.Time `json:"updatedAt,omitempty"`
}

// Absent fields are left unchanged.
type updateSiteSettingsRequest struct {
	MinTrustToCreateTopic         *int  `json:"minTrustToCreateTopic"`
	MinTrustToSendMessages        *int  `json:"minTrustToSendMessages"`
	MinTrustToSendEmailMessages   *int  `json:"minTrustToSendEmailMessages"`
	AllowDuplicateTopicTitles     *bool `json:"allowDuplicateTopicTitles"`
	EnableStagedUsers             *bool `json:"enableStagedUsers"`
	EnablePrivateEmailMessages    *bool `json:"enablePrivateEmailMessages"`
	MinTopicTitleLength           *int  `json:"minTopicTitleLength"`
	MaxTopicTitleLength           *int  `json:"maxTopicTitleLength"`
	MinPersonalMessageTitleLength *int  `json:"minPersonalMessageTitleLength"`
	MinPostLength                 *int  `json:"minPostLength"`
	MinPersonalMessagePostLength  *int  `json:"minPersonalMessagePostLength"`
	MaxTargetRecipients           *int  `json:"maxTargetRecipients"`
}

// Get handles GET /admin/site-settings.
func (h *SiteSettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSiteSettingsResponse(s))
}

// Update handles PUT /admin/site-settings.
func (h *SiteSettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSiteSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.svc.Update(r.Context(), sitesetting.UpdateInput(req))
	if err != nil {
		writeServiceError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSiteSettingsResponse(s))
}

func toSiteSettingsResponse(s domain.SiteSettings) siteSettingsResponse {
	resp := siteSettingsResponse{
		MinTrustToCreateTopic:         int(s.MinTrustToCreateTopic),
		MinTrustToSendMessages:        int(s.MinTrustToSendMessages),
		MinTrustToSendEmailMessages:   int(s.MinTrustToSendEmailMessages),
		AllowDuplicateTopicTitles:     s.AllowDuplicateTopicTitles,
		EnableStagedUsers:             s.EnableStagedUsers,
		EnablePrivateEmailMessages:    s.EnablePrivateEmailMessages,
		MinTopicTitleLength:           s.MinTopicTitleLength,
		MaxTopicTitleLength:           s.MaxTopicTitleLength,
		MinPersonalMessageTitleLength: s.MinPersonalMessageTitleLength,
		MinPostLength:                 s.MinPostLength,
		MinPersonalMessagePostLength:  s.MinPersonalMessagePostLength,
		MaxTargetRecipients:           s.MaxTargetRecipients,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = &s.UpdatedAt
	}
	return resp
}
