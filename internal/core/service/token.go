package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// sessionTokenBytes is the entropy of a session token (256 bits).
const sessionTokenBytes = 32

// TokenGenerator produces opaque session tokens.
type TokenGenerator func() (string, error)

// RandomToken returns a URL-safe, unpadded base64 string of
// sessionTokenBytes random bytes.
func RandomToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
