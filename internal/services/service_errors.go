// filepath: internal/services/service_errors.go
package services

import "errors"

// Standard errors returned by the service layer.
var (
	// ErrValidation covers missing required fields and out-of-range weights.
	ErrValidation = errors.New("validation failed")
	// ErrProtectedRecord is returned on attempts to delete the seed admin.
	ErrProtectedRecord = errors.New("protected record")
)
