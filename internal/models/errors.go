package models

import "errors"

var (
	ErrInvalidID        = errors.New("invalid id")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("database unavailable")
	ErrCartConflict     = errors.New("cart was modified concurrently, try again")
)

// ValidationError representa un error de validación
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
