package auth

import (
	"net/mail"
	"regexp"
	"unicode/utf8"

	"github.com/heartmarshall/forum-backend/internal/domain"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

const (
	minUsernameLength = 3
	maxUsernameLength = 20
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt limit
	maxEmailLength    = 254
)

// RegisterInput holds parameters for password registration.
type RegisterInput struct {
	Email    string
	Username string
	Name     string
	Password string
}

// Validate validates the registration input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	switch {
	case i.Email == "":
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(i.Email) > maxEmailLength:
		errs = append(errs, domain.FieldError{Field: "email", Message: "too long"})
	default:
		if addr, err := mail.ParseAddress(i.Email); err != nil || addr.Address != i.Email {
			errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
		}
	}

	n := utf8.RuneCountInString(i.Username)
	switch {
	case i.Username == "":
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	case n < minUsernameLength || n > maxUsernameLength:
		errs = append(errs, domain.FieldError{Field: "username", Message: "must be 3 to 20 characters"})
	case !usernamePattern.MatchString(i.Username):
		errs = append(errs, domain.FieldError{Field: "username", Message: "may contain letters, digits, '_', '.' and '-' only"})
	}

	switch {
	case i.Password == "":
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	case len(i.Password) < minPasswordLength:
		errs = append(errs, domain.FieldError{Field: "password", Message: "too short"})
	case len(i.Password) > maxPasswordLength:
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginPasswordInput holds parameters for password login.
type LoginPasswordInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginPasswordInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if len(i.Email) > maxEmailLength {
		errs = append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > maxPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
