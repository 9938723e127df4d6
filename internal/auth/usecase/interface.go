// Package usecase implements the token lifecycle, the authentication orchestration and the
// audit trail of the auth context.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
)

// AuditEventRepository defines persistence operations for audit events.
// Implementations must support transaction-aware operations via context propagation.
type AuditEventRepository interface {
	// Create stores a new audit event.
	Create(ctx context.Context, event *authDomain.AuditEvent) error

	// List returns events ordered by created_at descending. Nil bounds are not applied;
	// both bounds are inclusive.
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*authDomain.AuditEvent, error)

	// DeleteOlderThan removes events created before olderThan and returns how many were
	// affected. With dryRun it only counts them.
	DeleteOlderThan(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// TokenUseCase issues, validates and refreshes access tokens. It holds no mutable state.
type TokenUseCase interface {
	// Issue signs a token for username. Returns ErrUsernameRequired for a blank username.
	Issue(ctx context.Context, username string, authorities []string, sessionID string) (*authDomain.IssuedToken, error)

	// Validate classifies token as valid, expired, invalid or unsupported. It never fails.
	Validate(ctx context.Context, token string) *authDomain.ValidationOutcome

	// Refresh re-issues a signature-valid token with the same subject, authorities and session
	// and a fresh validity window.
	Refresh(ctx context.Context, token string) (*authDomain.IssuedToken, error)

	// IsExpired reports whether token is unusable for any reason.
	IsExpired(ctx context.Context, token string) bool

	// ExtractUsername returns the subject of a signature-valid token, ignoring expiry.
	ExtractUsername(token string) (string, bool)

	// ExtractAuthorities returns the authorities of a signature-valid token, ignoring expiry.
	ExtractAuthorities(token string) ([]string, bool)
}

// AuditRecorder records authentication events. Implementations must not block for long;
// failures are reported to the caller, which decides whether they matter.
type AuditRecorder interface {
	Record(
		ctx context.Context,
		eventType authDomain.AuditEventType,
		username, sessionID string,
		metadata map[string]any,
	) error
}

// AuditEventUseCase records, lists, prunes and verifies signed audit events.
type AuditEventUseCase interface {
	AuditRecorder

	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*authDomain.AuditEvent, error)

	// DeleteOlderThan removes events older than days days. With dryRun it only counts them.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)

	// Verify returns ErrSignatureInvalid when event was altered or never signed.
	Verify(event *authDomain.AuditEvent) error

	// VerifyBatch verifies every event created in [start, end].
	VerifyBatch(ctx context.Context, start, end time.Time) (*VerificationReport, error)
}

// AuthenticationUseCase converts identity assertions into access tokens. Every call returns
// an outcome; failures are reported inside it.
type AuthenticationUseCase interface {
	// Authenticate issues a token for an authenticated identity.
	Authenticate(ctx context.Context, identity *authDomain.ExternalIdentity) *authDomain.AuthenticationOutcome

	// AuthenticateCredentials verifies a username/password pair and issues a token.
	AuthenticateCredentials(ctx context.Context, credentials *authDomain.Credentials) *authDomain.AuthenticationOutcome

	// Refresh re-issues token and records the refresh.
	Refresh(ctx context.Context, token string) *authDomain.AuthenticationOutcome
}

// VerificationReport summarizes a batch signature verification.
type VerificationReport struct {
	TotalChecked  int64
	SignedCount   int64
	UnsignedCount int64
	ValidCount    int64
	InvalidCount  int64
	InvalidEvents []uuid.UUID
}
