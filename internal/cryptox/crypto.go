// Package cryptox hashes and verifies user passwords with argon2id.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/dmitrijs2005/srvtrack/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize   = 16
	hashPrefix = "argon2id"
)

// ErrMalformedHash is returned when a stored hash does not have the
// "argon2id$<salt>$<key>" shape.
var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt into a 32 byte key.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword returns an encoded argon2id hash of password with a fresh
// random salt, suitable for storing in users.password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", common.ErrorValidation
	}
	salt := common.GenerateRandByteArray(saltSize)
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	key := DeriveKey(pw, salt)
	return hashPrefix + "$" + hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the encoded hash.
func VerifyPassword(encoded, password string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashPrefix {
		return false, ErrMalformedHash
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedHash
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	got := DeriveKey(pw, salt)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
