package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// ValidateToken verifies an access token and returns the user id and role it
// carries. Used by the auth middleware.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, domain.UserRole, error) {
	claims, err := s.jwt.Verify(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, claims.Role, nil
}
