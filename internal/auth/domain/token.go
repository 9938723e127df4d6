package domain

import (
	"fmt"
	"time"
)

// TokenClaims is the decoded payload of an access token. SessionID is empty when the token
// carries no session index. Authorities is never nil once decoded.
type TokenClaims struct {
	Subject     string
	Authorities []string
	SessionID   string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// HasSession reports whether the claims carry a session index.
func (c *TokenClaims) HasSession() bool {
	return c.SessionID != ""
}

// IsExpiredAt reports whether the claims are expired at now. A token is expired from its
// expiry instant onwards.
func (c *TokenClaims) IsExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// IssuedToken is the result of issuing or refreshing a token.
type IssuedToken struct {
	Token  string
	Claims *TokenClaims
}

// ValidationOutcome is the result of validating a presented token. Claims is populated for
// valid tokens and for expired tokens whose signature verified; it is nil otherwise.
type ValidationOutcome struct {
	Status ValidationStatus
	Reason string
	Claims *TokenClaims
}

// Valid reports whether the outcome allows the token to be used.
func (o *ValidationOutcome) Valid() bool {
	return o != nil && o.Status == StatusValid
}

// NewValidOutcome builds a valid outcome for claims.
func NewValidOutcome(claims *TokenClaims) *ValidationOutcome {
	return &ValidationOutcome{Status: StatusValid, Claims: claims}
}

// NewExpiredOutcome builds an expired outcome that keeps the verified claims.
func NewExpiredOutcome(claims *TokenClaims) *ValidationOutcome {
	return &ValidationOutcome{
		Status: StatusExpired,
		Reason: fmt.Sprintf("%s: %s", ValidationFailedPrefix, ErrTokenExpired.Error()),
		Claims: claims,
	}
}

// NewInvalidOutcome builds an invalid outcome from the decoding failure.
func NewInvalidOutcome(cause error) *ValidationOutcome {
	return &ValidationOutcome{
		Status: StatusInvalid,
		Reason: fmt.Sprintf("%s: %s", ValidationFailedPrefix, cause.Error()),
	}
}

// NewUnsupportedOutcome builds an unsupported outcome from the decoding failure.
func NewUnsupportedOutcome(cause error) *ValidationOutcome {
	return &ValidationOutcome{
		Status: StatusUnsupported,
		Reason: fmt.Sprintf("%s: %s", ValidationFailedPrefix, cause.Error()),
	}
}
