package rest

import (
	"net/http"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/transport/middleware"
)

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Topics       *TopicHandler
	Categories   *CategoryHandler
	SiteSettings *SiteSettingHandler
}

// NewRouter registers every route. writeLimit wraps the endpoints that
// create rows; request-wide middleware is applied by the caller.
func NewRouter(h Handlers, writeLimit middleware.Middleware) *http.ServeMux {
	if writeLimit == nil {
		writeLimit = func(next http.Handler) http.Handler { return next }
	}
	user := middleware.Chain(middleware.RequireUser, writeLimit)
	staff := middleware.RequireRole(domain.UserRoleModerator, domain.UserRoleAdmin)
	admin := middleware.RequireRole(domain.UserRoleAdmin)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.Handle("POST /auth/register", writeLimit(http.HandlerFunc(h.Auth.Register)))
	mux.Handle("POST /auth/login", writeLimit(http.HandlerFunc(h.Auth.Login)))
	mux.Handle("GET /me", middleware.RequireUser(http.HandlerFunc(h.Auth.Me)))

	mux.Handle("POST /topics", user(http.HandlerFunc(h.Topics.Create)))
	mux.HandleFunc("GET /topics/{id}", h.Topics.Get)

	mux.HandleFunc("GET /categories", h.Categories.List)
	mux.Handle("POST /categories", staff(http.HandlerFunc(h.Categories.Create)))

	mux.Handle("GET /admin/site-settings", admin(http.HandlerFunc(h.SiteSettings.Get)))
	mux.Handle("PUT /admin/site-settings", admin(http.HandlerFunc(h.SiteSettings.Update)))

	return mux
}
