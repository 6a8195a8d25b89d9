package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrAborted       = errors.New("aborted")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// AbortReason tags why a creation attempt was aborted and rolled back.
type AbortReason string

const (
	AbortPermissionDenied AbortReason = "PERMISSION_DENIED"
	AbortFeatureDisabled  AbortReason = "FEATURE_DISABLED"
	AbortMalformedInput   AbortReason = "MALFORMED_INPUT"
	AbortDuplicateTitle   AbortReason = "DUPLICATE_TITLE"
)

func (r AbortReason) String() string { return string(r) }

// AbortError is returned when a mutating workflow refuses to proceed.
// Returning it from a RunInTx callback discards every write made in that transaction.
type AbortError struct {
	Reason  AbortReason
	Field   string
	Message string
}

func (e *AbortError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("aborted (%s): %s: %s", e.Reason, e.Field, e.Message)
	}
	return fmt.Sprintf("aborted (%s): %s", e.Reason, e.Message)
}

// Unwrap exposes ErrAborted plus the sentinel matching the reason, so callers
// can use errors.Is with either.
func (e *AbortError) Unwrap() []error {
	return []error{ErrAborted, e.kind()}
}

func (e *AbortError) kind() error {
	switch e.Reason {
	case AbortPermissionDenied, AbortFeatureDisabled:
		return ErrForbidden
	case AbortDuplicateTitle:
		return ErrAlreadyExists
	default:
		return ErrValidation
	}
}

// NewAbort creates an AbortError.
func NewAbort(reason AbortReason, field, message string) *AbortError {
	return &AbortError{Reason: reason, Field: field, Message: message}
}

// AbortReasonOf returns the reason of the first AbortError in err's chain.
func AbortReasonOf(err error) (AbortReason, bool) {
	var ae *AbortError
	if errors.As(err, &ae) {
		return ae.Reason, true
	}
	return "", false
}
