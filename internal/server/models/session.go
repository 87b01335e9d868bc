package models

import "time"

// Session tracks the single active session of a user. TokenID is the jti
// claim of the currently valid JWT; issuing a new token for the same user
// replaces it, which is what invalidates the previous login.
type Session struct {
	Username  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
