// Package domain defines the token and authentication models of the auth context.
// Tokens are HS512-signed JWS values whose claims are carried as a fixed structure.
package domain

// MinSigningKeyLength is the shortest accepted HS512 signing key, in bytes.
const MinSigningKeyLength = 64

// ValidationStatus classifies the result of validating a presented token.
type ValidationStatus string

const (
	// StatusValid means the signature verified and the token has not expired.
	StatusValid ValidationStatus = "valid"

	// StatusExpired means the signature verified but the expiry instant has passed.
	StatusExpired ValidationStatus = "expired"

	// StatusInvalid means the token could not be decoded or its signature did not verify.
	StatusInvalid ValidationStatus = "invalid"

	// StatusUnsupported means the token was signed with an algorithm other than HS512.
	StatusUnsupported ValidationStatus = "unsupported"
)

// AuditEventType names an auditable authentication event.
type AuditEventType string

const (
	EventLoginSuccess   AuditEventType = "auth.login_success"
	EventLoginFailed    AuditEventType = "auth.login_failed"
	EventTokenIssued    AuditEventType = "auth.token_issued"
	EventTokenRefreshed AuditEventType = "auth.token_refreshed"
)

// ValidationFailedPrefix prefixes every reason attached to a non-valid outcome.
const ValidationFailedPrefix = "token validation failed"
