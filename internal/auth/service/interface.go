// Package service provides the technical services of the auth context: the HS512 token codec,
// audit event signing, password hashing and the mock credential authenticator.
package service

import (
	"context"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
)

// TokenCodec serializes claims into a signed compact token and back. Implementations hold an
// immutable signing key and are safe for concurrent use.
type TokenCodec interface {
	// Encode signs claims and returns the compact JWS.
	Encode(claims *authDomain.TokenClaims) (string, error)

	// Decode verifies the signature and returns the claims without checking expiry.
	// Returns ErrTokenMalformed, ErrTokenSignatureInvalid or ErrUnsupportedAlgorithm.
	Decode(token string) (*authDomain.TokenClaims, error)
}

// AuditSigner signs and verifies audit events with a key derived from the signing secret.
type AuditSigner interface {
	// Sign returns the 32-byte HMAC-SHA256 signature of the event.
	Sign(event *authDomain.AuditEvent) ([]byte, error)

	// Verify returns ErrSignatureInvalid if the event signature does not match.
	Verify(event *authDomain.AuditEvent) error
}

// PasswordHasher hashes and compares user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare performs a constant-time comparison of password against hash.
	Compare(password string, hash string) bool
}

// CredentialStore looks up the stored credential of a user by username.
// Returns ErrNotFound when the user does not exist.
type CredentialStore interface {
	GetCredential(ctx context.Context, username string) (*authDomain.StoredCredential, error)
}

// CredentialAuthenticator turns submitted credentials into an identity assertion.
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, credentials *authDomain.Credentials) (*authDomain.ExternalIdentity, error)
}
