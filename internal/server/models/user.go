// Package models holds the server-side data records shared by services and
// repositories.
package models

import "time"

// User is a registered account. Username is the unique, immutable key.
// PasswordHash and Salt never leave the accounts service; ProfileImageRef is
// an opaque storage handle (S3 object key) and may be empty.
type User struct {
	Username        string
	PasswordHash    []byte
	Salt            []byte
	ProfileImageRef string
	CreatedAt       time.Time
}

// Public returns a copy stripped of credential material, safe to hand to
// transports and callers.
func (u *User) Public() User {
	return User{
		Username:        u.Username,
		ProfileImageRef: u.ProfileImageRef,
		CreatedAt:       u.CreatedAt,
	}
}
