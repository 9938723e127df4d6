package domain

import (
	"time"
)

// Failure messages carried by AuthenticationOutcome.Error.
const (
	MsgNotAuthenticated          = "identity not authenticated"
	MsgCredentialLoginDisabled   = "credential login is disabled"
	MsgAuthenticationUnavailable = "authentication is temporarily unavailable"
)

// ExternalIdentity is an identity assertion produced by an upstream authenticator such as an
// SSO provider, a trusted gateway or the mock credential authenticator.
type ExternalIdentity struct {
	Authenticated bool
	Principal     string
	Authorities   []string
	SessionID     string
}

// AuthenticationOutcome reports the result of turning an identity into an access token.
// Build it with NewAuthenticationSuccess or NewAuthenticationFailure so that a successful
// outcome always carries a token.
type AuthenticationOutcome struct {
	Success     bool
	Username    string
	Authorities []string
	Token       string
	SessionID   string
	ExpiresAt   time.Time
	Error       string
}

// NewAuthenticationSuccess builds a successful outcome from an issued token.
func NewAuthenticationSuccess(issued *IssuedToken) *AuthenticationOutcome {
	if issued == nil || issued.Token == "" || issued.Claims == nil {
		return NewAuthenticationFailure("token issuance produced no token")
	}
	return &AuthenticationOutcome{
		Success:     true,
		Username:    issued.Claims.Subject,
		Authorities: issued.Claims.Authorities,
		Token:       issued.Token,
		SessionID:   issued.Claims.SessionID,
		ExpiresAt:   issued.Claims.ExpiresAt,
	}
}

// NewAuthenticationFailure builds a failed outcome with the given message.
func NewAuthenticationFailure(message string) *AuthenticationOutcome {
	return &AuthenticationOutcome{Success: false, Error: message}
}

// Credentials is a username/password pair submitted to the mock credential login.
type Credentials struct {
	Username string
	Password string
}

// StoredCredential is the password hash and granted authorities of a user as persisted.
// Authorities holds the user's role names followed by its permission names.
type StoredCredential struct {
	Username     string
	PasswordHash string
	IsActive     bool
	Authorities  []string
}
