// internal/core/domain/errors.go
package domain

import "errors"

// Error classes returned by the inventory core and its adapters. They are
// always wrapped with context; match them with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrIO                = errors.New("storage error")
	ErrCorrupt           = errors.New("corrupt inventory data")
	ErrUnauthorized      = errors.New("unauthorized")
)
