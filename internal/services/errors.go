package services

import "errors"

// Errors shared across services. Domain-specific sentinels live next to the
// service that owns them.
var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("operation not allowed for this role")
)
