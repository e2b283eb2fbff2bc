// Package common defines shared constants and sentinel errors used across
// the layers of PersonalNoteHub. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal  = errors.New("internal error")
	ErrorForbidden = errors.New("forbidden")

	// Auth errors. The messages are deliberately generic: login failures
	// must not reveal whether the account exists or has a password, and
	// token failures must not reveal why verification failed.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorInvalidToken       = errors.New("invalid or expired token")

	// Validation errors. Match with errors.Is(err, ErrorValidation);
	// field detail travels in ValidationError.
	ErrorValidation = errors.New("validation error")

	// External collaborator not configured or unreachable.
	ErrorUnavailable = errors.New("service unavailable")
)

// ValidationError carries field-level detail about malformed input.
// It matches ErrorValidation under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

// AccessTokenHeaderName is the HTTP header carrying the access token on
// inbound requests, in the form "Bearer <token>".
const AccessTokenHeaderName = "Authorization"
