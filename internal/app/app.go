package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/forum-backend/internal/adapter/mail"
	"github.com/heartmarshall/forum-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/audit"
	categoryrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/category"
	postrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/post"
	sitesettingrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/sitesetting"
	topicrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/topic"
	topictimerrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/topictimer"
	topicuserrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/topicuser"
	userrepo "github.com/heartmarshall/forum-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/forum-backend/internal/auth"
	"github.com/heartmarshall/forum-backend/internal/config"
	"github.com/heartmarshall/forum-backend/internal/domain"
	authsvc "github.com/heartmarshall/forum-backend/internal/service/auth"
	categorysvc "github.com/heartmarshall/forum-backend/internal/service/category"
	sitesettingsvc "github.com/heartmarshall/forum-backend/internal/service/sitesetting"
	topicsvc "github.com/heartmarshall/forum-backend/internal/service/topic"
	usersvc "github.com/heartmarshall/forum-backend/internal/service/user"
	"github.com/heartmarshall/forum-backend/internal/transport/middleware"
	"github.com/heartmarshall/forum-backend/internal/transport/rest"
)

const rateLimitCleanupInterval = 5 * time.Minute

// Run is the server entry point. It blocks until ctx is cancelled or the
// HTTP server fails, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, os.Stdout)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	limiter := middleware.NewRateLimiter(rateLimitCleanupInterval)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newHandler(cfg, logger, pool, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}

// newHandler builds repositories, services and the HTTP handler tree.
func newHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, limiter *middleware.RateLimiter) http.Handler {
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	categories := categoryrepo.New(pool)
	topics := topicrepo.New(pool)
	posts := postrepo.New(pool)
	timers := topictimerrepo.New(pool)
	watches := topicuserrepo.New(pool)
	settings := sitesettingrepo.New(pool)
	audit := auditrepo.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	checks := []rest.HealthCheck{{Name: "database", Pinger: pool}}
	var mailer interface {
		Send(ctx context.Context, msg domain.Email) error
	}
	if cfg.SMTP.Enabled() {
		smtp := mail.NewSMTPSender(cfg.SMTP)
		mailer = smtp
		checks = append(checks, rest.HealthCheck{Name: "smtp", Pinger: smtp, Optional: true})
	} else {
		mailer = mail.NewLogSender(logger)
	}

	authService := authsvc.NewService(logger, users, audit, txm, jwtManager, cfg.Auth)
	userService := usersvc.NewService(logger, users, audit, txm)
	categoryService := categorysvc.NewService(logger, categories, users, audit, txm)
	settingService := sitesettingsvc.NewService(logger, settings, users, audit, txm, cfg.Site.Defaults())
	topicService := topicsvc.NewService(logger, topics, posts, categories, users, timers, watches, audit, txm, settingService, mailer)

	mux := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(Version, checks...),
		Auth:         rest.NewAuthHandler(authService, userService, logger),
		Topics:       rest.NewTopicHandler(topicService, logger),
		Categories:   rest.NewCategoryHandler(categoryService, logger),
		SiteSettings: rest.NewSiteSettingHandler(settingService, logger),
	}, limiter.Limit(cfg.Server.WriteRateLimit))

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authService),
	)(mux)
}
