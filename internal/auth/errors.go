package auth

import "errors"

var (
	// ErrInvalidToken covers malformed tokens, wrong signatures and bad
	// claims alike. The reasons are deliberately not distinguished in the
	// surfaced message.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the embedded expiry claim is in the past.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked is returned when a refresh token verifies
	// cryptographically but its persisted record is gone or soft-deleted.
	ErrTokenRevoked = errors.New("refresh token not found or revoked")

	// ErrNotFound is returned by Store lookups that match no record.
	ErrNotFound = errors.New("record not found")
)
