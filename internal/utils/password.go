package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrNoAdminPassword is returned when neither a password nor a hash is set.
var ErrNoAdminPassword = errors.New("admin password not configured")

// AdminPasswordHash resolves the shared admin credential.  A preset bcrypt
// hash wins over the plaintext, which is hashed with cost and then dropped.
func AdminPasswordHash(plain, preset string, cost int) (string, error) {
	if preset != "" {
		if _, err := bcrypt.Cost([]byte(preset)); err != nil {
			return "", fmt.Errorf("admin password hash: %w", err)
		}
		return preset, nil
	}
	if plain == "" {
		return "", ErrNoAdminPassword
	}
	return HashPassword(plain, cost)
}

// HashPassword returns the bcrypt hash of plain.  Costs outside bcrypt's
// range fall back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches hash.  An empty password
// never matches.
func VerifyPassword(hash, plain string) bool {
	return plain != "" && bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
