package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
)

// mockCredentialAuthenticator authenticates username/password pairs against the users table.
// It stands in for the SSO provider in development and test deployments.
type mockCredentialAuthenticator struct {
	store  CredentialStore
	hasher PasswordHasher
	// dummyHash is compared against when there is no usable stored hash so that every
	// rejected login costs one password verification.
	dummyHash string
}

// Authenticate verifies credentials and returns an authenticated identity whose authorities are
// the user's role names followed by its permission names. Every session gets a fresh index.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for unknown users, inactive users and wrong passwords
//     alike so callers cannot enumerate accounts
//   - Each of those paths runs exactly one hash comparison, so response time does not reveal
//     whether the account exists either
//   - Store failures are propagated so they are not mistaken for bad credentials
func (m *mockCredentialAuthenticator) Authenticate(
	ctx context.Context,
	credentials *authDomain.Credentials,
) (*authDomain.ExternalIdentity, error) {
	if credentials == nil || strings.TrimSpace(credentials.Username) == "" || credentials.Password == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	stored, err := m.store.GetCredential(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			m.hasher.Compare(credentials.Password, m.dummyHash)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "failed to load credential")
	}

	hash := stored.PasswordHash
	if hash == "" {
		hash = m.dummyHash
	}
	matches := m.hasher.Compare(credentials.Password, hash)
	if !stored.IsActive || stored.PasswordHash == "" || !matches {
		return nil, authDomain.ErrInvalidCredentials
	}

	return &authDomain.ExternalIdentity{
		Authenticated: true,
		Principal:     stored.Username,
		Authorities:   stored.Authorities,
		SessionID:     uuid.Must(uuid.NewV7()).String(),
	}, nil
}

// NewMockCredentialAuthenticator creates a CredentialAuthenticator backed by store.
func NewMockCredentialAuthenticator(store CredentialStore, hasher PasswordHasher) CredentialAuthenticator {
	return &mockCredentialAuthenticator{
		store:     store,
		hasher:    hasher,
		dummyHash: newDummyHash(hasher),
	}
}

// newDummyHash hashes a random value nobody knows. A hashing failure leaves an empty hash,
// which never matches.
func newDummyHash(hasher PasswordHasher) string {
	hash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return ""
	}
	return hash
}
