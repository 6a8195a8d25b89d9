package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	UpdateTrustLevel(ctx context.Context, id uuid.UUID, level domain.TrustLevel) (*domain.User, error)
}

// auditLogger defines the audit interface needed by user service.
type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

// txManager defines the transaction manager interface needed by user service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements profile and account administration operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	audit auditLogger
	tx    txManager
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
		audit: audit,
		tx:    tx,
	}
}
