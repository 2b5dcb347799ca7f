// Package password implements argon2id credential hashing.
//
// Argon2id avoids bcrypt's 72-byte input limit; the encoded hash carries its
// own parameters so they can be raised later without invalidating old rows.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	memory     = 64 * 1024
	iterations = 1
	threads    = 4
	saltLen    = 16
	keyLen     = 32

	// MaxLen bounds input size; generous, unlike bcrypt's 72 bytes.
	MaxLen = 1024
)

var ErrPasswordTooLong = errors.New("password exceeds maximum length")

// Hash returns a PHC-formatted argon2id hash with a fresh random salt.
func Hash(password string) (string, error) {
	if len(password) > MaxLen {
		return "", ErrPasswordTooLong
	}
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	digest := argon2.IDKey([]byte(password), salt, iterations, memory, threads, keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, iterations, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify recomputes the digest with the parameters embedded in encoded and
// compares in constant time. Malformed input yields false, never an error.
func Verify(password, encoded string) bool {
	if len(password) > MaxLen {
		return false
	}
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var m uint32
	var t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
