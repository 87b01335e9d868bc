// Package cryptox implements the symmetric message codec used between
// conversation participants, the key-derivation strategy that produces the
// shared cipher key, and the salted password hashing used by the account
// store.
//
// The relay never imports Decrypt: message bodies stay opaque ciphertext on
// the server side.
package cryptox

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"crypto/rand"
	"fmt"

	"github.com/dmitrijs2005/stgmsg/internal/common"
)

// KeySize is the cipher key length in bytes.
const KeySize = 8

// Encrypt encrypts plaintext with the given 8-byte key using DES in CBC mode
// with PKCS#7 padding. A fresh random IV is generated per call and prepended
// to the returned ciphertext.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}

	padded := pad(plaintext, block.BlockSize())

	ciphertext := make([]byte, block.BlockSize()+len(padded))
	iv := ciphertext[:block.BlockSize()]
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext[block.BlockSize():], padded)

	return ciphertext, nil
}

// Decrypt reverses Encrypt. It returns common.ErrBadCiphertext if the input
// is shorter than IV+one block, is not a multiple of the block size, or
// carries invalid padding after decryption. Garbage input never silently
// decrypts to garbage plaintext.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}

	bs := block.BlockSize()
	if len(ciphertext) < 2*bs || len(ciphertext)%bs != 0 {
		return nil, common.ErrBadCiphertext
	}

	iv := ciphertext[:bs]
	body := ciphertext[bs:]

	padded := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, body)

	plaintext, err := unpad(padded, bs)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

func pad(data []byte, bs int) []byte {
	n := bs - len(data)%bs
	return append(append([]byte{}, data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, bs int) ([]byte, error) {
	if len(data) == 0 || len(data)%bs != 0 {
		return nil, common.ErrBadCiphertext
	}
	n := int(data[len(data)-1])
	if n == 0 || n > bs {
		return nil, common.ErrBadCiphertext
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, common.ErrBadCiphertext
		}
	}
	return data[:len(data)-n], nil
}
