// Package sitesetting serves the site-wide settings snapshot that gates topic
// and message creation.
package sitesetting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/guardian"
	"github.com/heartmarshall/forum-backend/pkg/ctxutil"
)

type settingsRepo interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Save(ctx context.Context, s domain.SiteSettings) (*domain.SiteSettings, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service reads and updates site settings. Until an admin saves settings the
// configured defaults apply.
type Service struct {
	log      *slog.Logger
	repo     settingsRepo
	users    userRepo
	audit    auditLogger
	tx       txManager
	defaults domain.SiteSettings
}

// NewService creates a new site settings service.
func NewService(
	logger *slog.Logger,
	repo settingsRepo,
	users userRepo,
	audit auditLogger,
	tx txManager,
	defaults domain.SiteSettings,
) *Service {
	return &Service{
		log:      logger.With("service", "sitesetting"),
		repo:     repo,
		users:    users,
		audit:    audit,
		tx:       tx,
		defaults: defaults,
	}
}

// Get returns the current settings snapshot.
func (s *Service) Get(ctx context.Context) (domain.SiteSettings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.defaults, nil
		}
		return domain.SiteSettings{}, fmt.Errorf("sitesetting.Get: %w", err)
	}
	return *stored, nil
}

// Update applies input on top of the current snapshot and stores the result.
// Only admins may change settings.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.SiteSettings, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.SiteSettings{}, domain.ErrUnauthorized
	}
	actor, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SiteSettings{}, domain.ErrUnauthorized
		}
		return domain.SiteSettings{}, fmt.Errorf("sitesetting.Update get actor: %w", err)
	}

	var saved *domain.SiteSettings
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.Get(txCtx)
		if err != nil {
			return err
		}
		if !guardian.New(actor, current).CanChangeSiteSettings() {
			return domain.ErrForbidden
		}

		next, changes := input.apply(current)
		if len(changes) == 0 {
			saved = &current
			return nil
		}
		if err := next.Validate(); err != nil {
			return err
		}

		saved, err = s.repo.Save(txCtx, next)
		if err != nil {
			return fmt.Errorf("save settings: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			EntityType: domain.EntityTypeSiteSettings,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return domain.SiteSettings{}, err
	}

	s.log.InfoContext(ctx, "site settings updated",
		slog.String("user_id", actor.ID.String()))

	return *saved, nil
}
