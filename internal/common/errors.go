// Package common defines shared constants and sentinel errors used across
// the dealdocs server layers. Callers should use errors.Is to match these
// values; lower layers wrap them with fmt.Errorf("...: %w", ...).
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorStoreUnavailable = errors.New("store unavailable")

	// Catalog errors.
	ErrorCatalogUnavailable = errors.New("catalog unavailable")
	ErrorCatalogNotFound    = errors.New("catalog entry not found")

	// Service-level errors.
	ErrorAccessDenied      = errors.New("access denied")
	ErrorValidation        = errors.New("validation error")
	ErrorInvalidTransition = errors.New("invalid status transition")
	ErrorInternal          = errors.New("internal error")
	ErrorUnauthorized      = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
