package auth

import (
	"time"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

// AuthResult is returned by Register and LoginWithPassword.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *domain.User
}
