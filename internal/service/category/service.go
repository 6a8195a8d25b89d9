// Package category manages the categories regular topics are filed under.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/internal/guardian"
	"github.com/heartmarshall/forum-backend/pkg/ctxutil"
)

const (
	maxNameLength        = 50
	maxDescriptionLength = 1000
)

type categoryRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
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

// Service implements category operations.
type Service struct {
	log        *slog.Logger
	categories categoryRepo
	users      userRepo
	audit      auditLogger
	tx         txManager
}

// NewService creates a new category service.
func NewService(logger *slog.Logger, categories categoryRepo, users userRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		log:        logger.With("service", "category"),
		categories: categories,
		users:      users,
		audit:      audit,
		tx:         tx,
	}
}

// CreateCategoryInput holds parameters for creating a category.
type CreateCategoryInput struct {
	Name           string
	Description    *string
	ReadRestricted bool
}

// Validate validates the input.
func (i CreateCategoryInput) Validate() error {
	var errs []domain.FieldError

	name := domain.CleanTitle(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 50)"})
	}
	if i.Description != nil && utf8.RuneCountInString(*i.Description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 1000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Create adds a category. Only staff may create categories, and names are
// unique ignoring case.
func (s *Service) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("category.Create get actor: %w", err)
	}
	if !guardian.New(actor, domain.SiteSettings{}).CanManageCategories() {
		return nil, domain.ErrForbidden
	}

	name := domain.CleanTitle(input.Name)
	var description *string
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			description = &d
		}
	}

	var created *domain.Category
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.categories.GetByName(txCtx, name); err == nil {
			return domain.NewValidationError("name", "already taken")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check name: %w", err)
		}

		now := time.Now().UTC()
		c, err := s.categories.Create(txCtx, &domain.Category{
			ID:             uuid.New(),
			Name:           name,
			Slug:           domain.Slugify(name),
			Description:    description,
			ReadRestricted: input.ReadRestricted,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return fmt.Errorf("create category: %w", err)
		}

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     actor.ID,
			EntityType: domain.EntityTypeCategory,
			EntityID:   &c.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name": map[string]any{"new": name},
			},
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category created",
		slog.String("user_id", actor.ID.String()),
		slog.String("category_id", created.ID.String()),
		slog.String("name", name),
	)

	return created, nil
}

// List returns the categories visible to the caller. Read-restricted
// categories are listed for staff only.
func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("category.List: %w", err)
	}

	var actor *domain.User
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		if u, err := s.users.GetByID(ctx, userID); err == nil {
			actor = u
		}
	}
	g := guardian.New(actor, domain.SiteSettings{})

	out := make([]domain.Category, 0, len(all))
	for _, c := range all {
		if c.ReadRestricted && !g.IsStaff() {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
