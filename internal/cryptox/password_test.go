package cryptox

import (
	"bytes"
	"testing"
)

func TestHashPassword_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	h1 := HashPassword(password, salt)
	h2 := HashPassword(password, salt)

	if !bytes.Equal(h1, h2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(h1) != 32 {
		t.Errorf("expected 32-byte digest, got %d", len(h1))
	}
}

func TestHashPassword_SaltMatters(t *testing.T) {
	password := []byte("secret-password")

	h1 := HashPassword(password, []byte("salt-one"))
	h2 := HashPassword(password, []byte("salt-two"))

	if bytes.Equal(h1, h2) {
		t.Errorf("different salts must produce different digests")
	}
}

func TestVerifyPassword(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("salt")
	hash := HashPassword(password, salt)

	if !VerifyPassword(password, salt, hash) {
		t.Errorf("expected correct password to verify")
	}
	if VerifyPassword([]byte("wrong"), salt, hash) {
		t.Errorf("expected wrong password to fail")
	}
	if VerifyPassword(password, []byte("wrong-salt"), hash) {
		t.Errorf("expected wrong salt to fail")
	}
}
