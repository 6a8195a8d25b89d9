package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/pkg/ctxutil"
)

// SetRole changes the role of the user with the given email.
//
// Without an actor in ctx the call is treated as an operator action (forumctl).
// With one, the actor must be an admin and may not demote themselves.
func (s *Service) SetRole(ctx context.Context, email string, role domain.UserRole) (*domain.User, error) {
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be one of user, moderator, admin")
	}

	var updated *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		target, actorID, operator, err := s.loadTarget(txCtx, email)
		if err != nil {
			return err
		}
		if !operator && actorID == target.ID && role != domain.UserRoleAdmin {
			return domain.NewValidationError("role", "cannot demote yourself")
		}

		updated, err = s.users.UpdateRole(txCtx, target.ID, role)
		if err != nil {
			return fmt.Errorf("update role: %w", err)
		}

		return s.logChange(txCtx, actorID, target.ID, "role", target.Role().String(), role.String())
	})
	if err != nil {
		return nil, fmt.Errorf("user.SetRole: %w", err)
	}

	s.log.InfoContext(ctx, "user role updated",
		slog.String("target_user_id", updated.ID.String()),
		slog.String("new_role", role.String()),
	)

	return updated, nil
}

// SetTrustLevel changes the trust level of the user with the given email.
// Authorization follows SetRole.
func (s *Service) SetTrustLevel(ctx context.Context, email string, level domain.TrustLevel) (*domain.User, error) {
	if !level.IsValid() {
		return nil, domain.NewValidationError("trust_level", "must be between 0 and 4")
	}

	var updated *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		target, actorID, _, err := s.loadTarget(txCtx, email)
		if err != nil {
			return err
		}

		updated, err = s.users.UpdateTrustLevel(txCtx, target.ID, level)
		if err != nil {
			return fmt.Errorf("update trust level: %w", err)
		}

		return s.logChange(txCtx, actorID, target.ID, "trust_level", target.TrustLevel.String(), level.String())
	})
	if err != nil {
		return nil, fmt.Errorf("user.SetTrustLevel: %w", err)
	}

	s.log.InfoContext(ctx, "user trust level updated",
		slog.String("target_user_id", updated.ID.String()),
		slog.String("trust_level", level.String()),
	)

	return updated, nil
}

// loadTarget resolves the target user and checks the caller. Operator calls
// carry no actor in ctx; their audit entries are attributed to the target.
func (s *Service) loadTarget(ctx context.Context, email string) (target *domain.User, actorID uuid.UUID, operator bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, uuid.Nil, false, domain.NewValidationError("email", "required")
	}

	target, err = s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, uuid.Nil, false, fmt.Errorf("get user: %w", err)
	}

	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return target, target.ID, true, nil
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, uuid.Nil, false, domain.ErrUnauthorized
		}
		return nil, uuid.Nil, false, fmt.Errorf("get actor: %w", err)
	}
	if !actor.Admin {
		return nil, uuid.Nil, false, domain.ErrForbidden
	}
	return target, actor.ID, false, nil
}

func (s *Service) logChange(ctx context.Context, actorID, targetID uuid.UUID, field, oldValue, newValue string) error {
	if err := s.audit.Log(ctx, domain.AuditRecord{
		UserID:     actorID,
		EntityType: domain.EntityTypeUser,
		EntityID:   &targetID,
		Action:     domain.AuditActionUpdate,
		Changes: map[string]any{
			field: map[string]any{"old": oldValue, "new": newValue},
		},
	}); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}
