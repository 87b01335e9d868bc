// Package common defines shared constants and sentinel errors used across
// client and server layers of stgmsg. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username taken")
	ErrStorageFull   = errors.New("storage full")

	// Relay validation errors.
	ErrUnknownRecipient = errors.New("unknown recipient")
	ErrBodyTooLarge     = errors.New("message body too large")
	ErrTitleTooLong     = errors.New("message title too long")
	ErrEmptyBody        = errors.New("empty message body")

	// Auth errors. Unknown user and wrong password intentionally collapse
	// into ErrInvalidCredentials so usernames cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionInvalid     = errors.New("session invalid")

	// Codec errors.
	ErrBadCiphertext = errors.New("bad ciphertext")

	// Discovery errors.
	ErrDiscoveryUnavailable = errors.New("discovery unavailable")

	// Generic flow control.
	ErrInternal = errors.New("internal error")
)
