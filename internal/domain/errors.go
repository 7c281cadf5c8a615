package domain

import (
	"errors"
)

// Sentinel errors returned by services and repositories - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ConflictError represents a uniqueness conflict with details about the
// existing resource (e.g. a username or email that is already taken).
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (user, project, ...)
	Field        string // Conflicting field (username, email)
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
