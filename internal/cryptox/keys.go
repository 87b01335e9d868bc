package cryptox

import (
	"crypto/sha256"
	"sort"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// KeyDeriver produces the shared cipher key for a conversation. How the two
// participants end up with matching secret material is deliberately outside
// this package: swap in another implementation to change the key-exchange
// policy without touching the cipher.
type KeyDeriver interface {
	DeriveKey(participants ...string) ([]byte, error)
}

// PBKDF2Deriver derives an 8-byte key from pre-shared secret material using
// PBKDF2-SHA256 with 10000 iterations. The salt is the sorted participant
// list, so both ends derive the same key regardless of who is sending.
type PBKDF2Deriver struct {
	Secret []byte
}

const pbkdf2Iterations = 10000

func (d *PBKDF2Deriver) DeriveKey(participants ...string) ([]byte, error) {
	sorted := make([]string, len(participants))
	copy(sorted, participants)
	sort.Strings(sorted)

	salt := []byte(strings.Join(sorted, ":"))
	return pbkdf2.Key(d.Secret, salt, pbkdf2Iterations, KeySize, sha256.New), nil
}
