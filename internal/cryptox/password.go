package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// HashPassword computes a salted Argon2id digest of the password.
// The digest is what the account store persists; the clear password is
// never stored or transmitted.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword recomputes the digest and compares it to the stored one in
// constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
