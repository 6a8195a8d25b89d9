package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/auth"
	"github.com/heartmarshall/forum-backend/internal/config"
	"github.com/heartmarshall/forum-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// auditLogger records account creation.
type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// jwtManager defines the token operations needed by auth service.
type jwtManager interface {
	Issue(userID uuid.UUID, role domain.UserRole) (string, time.Time, error)
	Verify(token string) (auth.Claims, error)
}

// Service implements auth operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	audit auditLogger
	tx    txManager
	jwt   jwtManager
	cfg   config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	audit auditLogger,
	tx txManager,
	jwt jwtManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		audit: audit,
		tx:    tx,
		jwt:   jwt,
		cfg:   cfg,
	}
}

// issueToken signs an access token for user.
func (s *Service) issueToken(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Issue(user.ID, user.Role())
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &AuthResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
