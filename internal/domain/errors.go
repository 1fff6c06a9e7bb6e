// Package domain holds the sentinel errors shared by every layer.
package domain

import (
	"errors"

	"github.com/wooldanji/console/internal/database"
)

// Domain errors.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = database.ErrNotFound

	// ErrValidation indicates a validation error.
	ErrValidation = errors.New("validation error")

	// ErrConflict indicates a conflict with existing data or state.
	ErrConflict = errors.New("conflict")

	// ErrForbidden indicates the caller may not perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized indicates the caller is not authenticated.
	ErrUnauthorized = errors.New("unauthorized")
)
