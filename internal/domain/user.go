package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a forum account. Staged users are placeholders created for email
// recipients who have not registered yet.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Name         string
	PasswordHash *string
	TrustLevel   TrustLevel
	Admin        bool
	Moderator    bool
	Staged       bool
	Silenced     bool
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff reports whether the user holds an elevated role.
func (u *User) IsStaff() bool {
	return u.Admin || u.Moderator
}

// Role returns the highest role held by the user.
func (u *User) Role() UserRole {
	switch {
	case u.Admin:
		return UserRoleAdmin
	case u.Moderator:
		return UserRoleModerator
	}
	return UserRoleUser
}

// HasTrustLevel reports whether the user's trust level reaches min.
func (u *User) HasTrustLevel(min TrustLevel) bool {
	return u.TrustLevel >= min
}
