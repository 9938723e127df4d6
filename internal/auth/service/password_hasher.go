package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/portfolio-auth/internal/errors"
)

// argon2PasswordHasher implements PasswordHasher with Argon2id.
type argon2PasswordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// Hash returns the encoded Argon2id hash of password.
func (h *argon2PasswordHasher) Hash(password string) (string, error) {
	hash, err := h.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Compare reports whether password matches hash. Malformed hashes never match.
func (h *argon2PasswordHasher) Compare(password string, hash string) bool {
	ok, err := h.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordHasher creates an Argon2id PasswordHasher using the Moderate policy.
func NewPasswordHasher() PasswordHasher {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// Only reachable with an invalid built-in policy.
		panic(err)
	}

	return &argon2PasswordHasher{hasher: hasher}
}
