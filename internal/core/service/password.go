package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/salon/booking-api/internal/core/domain"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordHasher hashes new passwords and verifies stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
	// NeedsRehash reports whether a stored hash should be replaced by
	// Hash on the next successful login.
	NeedsRehash(hash string) bool
}

// LegacyHasher is the unsalted SHA-256 hex digest existing accounts were
// created with. The same password always yields the same hash.
type LegacyHasher struct{}

func NewLegacyHasher() LegacyHasher { return LegacyHasher{} }

func (LegacyHasher) Hash(password string) (string, error) {
	return legacyDigest(password), nil
}

func (LegacyHasher) Verify(hash, password string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(legacyDigest(password))) == 1
}

func (LegacyHasher) NeedsRehash(string) bool { return false }

func legacyDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// BcryptHasher issues salted bcrypt hashes and still accepts legacy SHA-256
// hashes so accounts migrate on their next login.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a BcryptHasher, clamping cost to bcrypt's range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, MaxPasswordBytes)
		}
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(hash, password string) bool {
	if isLegacyHash(hash) {
		return LegacyHasher{}.Verify(hash, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *BcryptHasher) NeedsRehash(hash string) bool {
	if isLegacyHash(hash) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != h.cost
}

func isLegacyHash(hash string) bool {
	if len(hash) != sha256.Size*2 || strings.HasPrefix(hash, "$2") {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
