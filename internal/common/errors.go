// Package common defines shared constants and sentinel errors used across
// the CMS server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorStoreUnavailable = errors.New("store unavailable")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorValidation       = errors.New("validation error")

	// Credential / recovery flow errors.
	ErrorDuplicateEmail       = errors.New("email already registered")
	ErrorInvalidCredentials   = errors.New("incorrect email or password")
	ErrorInvalidOrExpiredCode = errors.New("invalid or expired OTP")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
