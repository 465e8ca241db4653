package errors

import "errors"

// Shared application errors.
var (
	// ErrNotFound is used when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is used for authentication failures (bad token, no rights).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is used when the user lacks permission for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is used for input validation failures.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is used for state conflicts (e.g. duplicate key name).
	ErrConflict = errors.New("resource state conflict")
)
