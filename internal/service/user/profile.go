package user

import (
	"context"
	"fmt"

	"github.com/heartmarshall/forum-backend/internal/domain"
	"github.com/heartmarshall/forum-backend/pkg/ctxutil"
)

// Me returns the authenticated user's profile.
// Returns ErrUnauthorized if no userID is found in context.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.Me: %w", err)
	}

	return user, nil
}
