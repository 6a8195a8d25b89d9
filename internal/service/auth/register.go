package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// Register creates a new user with email + password authentication.
// Returns ErrAlreadyExists if the email or username is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}
	hashStr := string(hash)

	// Email and username uniqueness are enforced by DB constraints.
	var created *domain.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()
		name := input.Name
		if name == "" {
			name = input.Username
		}

		user, err := s.users.Create(txCtx, &domain.User{
			ID:           uuid.New(),
			Email:        input.Email,
			Username:     input.Username,
			Name:         name,
			PasswordHash: &hashStr,
			TrustLevel:   domain.TrustLevelNewUser,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		if err := s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     user.ID,
			EntityType: domain.EntityTypeUser,
			EntityID:   &user.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"username": map[string]any{"new": user.Username},
			},
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		created = user
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	result, err := s.issueToken(created)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered via password",
		slog.String("user_id", created.ID.String()))

	return result, nil
}
