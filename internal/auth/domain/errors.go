package domain

import (
	"github.com/allisson/portfolio-auth/internal/errors"
)

// Token and authentication errors.
var (
	// ErrUsernameRequired indicates an attempt to issue a token without a subject.
	ErrUsernameRequired = errors.Wrap(errors.ErrInvalidInput, "username is required")

	// ErrTokenMalformed indicates the token is not a well-formed HS512 JWS with the required claims.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "token is malformed")

	// ErrTokenSignatureInvalid indicates the token signature does not match the signing key.
	ErrTokenSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "token signature is invalid")

	// ErrUnsupportedAlgorithm indicates the token header names an algorithm other than HS512.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrUnauthorized, "token signing algorithm is not supported")

	// ErrTokenExpired indicates the token expiry instant has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token has expired")

	// ErrTokenRefreshRejected indicates a refresh request whose token could not be verified.
	ErrTokenRefreshRejected = errors.Wrap(errors.ErrUnauthorized, "token refresh rejected")

	// ErrSigningKeyTooShort indicates a signing key shorter than MinSigningKeyLength.
	ErrSigningKeyTooShort = errors.Wrap(errors.ErrInvalidInput, "signing key must be at least 64 bytes")

	// ErrInvalidCredentials indicates a username/password pair that does not match a stored user.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrSignatureInvalid indicates an audit event whose signature does not verify.
	ErrSignatureInvalid = errors.New("audit event signature is invalid")
)
