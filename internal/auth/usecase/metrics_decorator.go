package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	"github.com/allisson/portfolio-auth/internal/metrics"
)

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func outcomeStatus(outcome *authDomain.AuthenticationOutcome) string {
	if outcome != nil && outcome.Success {
		return "success"
	}
	return "failure"
}

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation, status string, start time.Time) {
	t.metrics.RecordOperation(ctx, "auth", operation, status)
	t.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	username string,
	authorities []string,
	sessionID string,
) (*authDomain.IssuedToken, error) {
	start := time.Now()
	issued, err := t.next.Issue(ctx, username, authorities, sessionID)
	t.record(ctx, "token_issue", statusOf(err), start)
	return issued, err
}

// Validate records metrics labelled with the validation status.
func (t *tokenUseCaseWithMetrics) Validate(ctx context.Context, token string) *authDomain.ValidationOutcome {
	start := time.Now()
	outcome := t.next.Validate(ctx, token)
	t.record(ctx, "token_validate", string(outcome.Status), start)
	return outcome
}

// Refresh records metrics for token refresh.
func (t *tokenUseCaseWithMetrics) Refresh(ctx context.Context, token string) (*authDomain.IssuedToken, error) {
	start := time.Now()
	issued, err := t.next.Refresh(ctx, token)
	t.record(ctx, "token_refresh", statusOf(err), start)
	return issued, err
}

// IsExpired delegates without recording; it is a thin wrapper over Validate.
func (t *tokenUseCaseWithMetrics) IsExpired(ctx context.Context, token string) bool {
	return t.next.IsExpired(ctx, token)
}

func (t *tokenUseCaseWithMetrics) ExtractUsername(token string) (string, bool) {
	return t.next.ExtractUsername(token)
}

func (t *tokenUseCaseWithMetrics) ExtractAuthorities(token string) ([]string, bool) {
	return t.next.ExtractAuthorities(token)
}

// authenticationUseCaseWithMetrics decorates AuthenticationUseCase with metrics instrumentation.
type authenticationUseCaseWithMetrics struct {
	next    AuthenticationUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthenticationUseCaseWithMetrics wraps an AuthenticationUseCase with metrics recording.
func NewAuthenticationUseCaseWithMetrics(
	useCase AuthenticationUseCase,
	m metrics.BusinessMetrics,
) AuthenticationUseCase {
	return &authenticationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authenticationUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	outcome *authDomain.AuthenticationOutcome,
	start time.Time,
) {
	status := outcomeStatus(outcome)
	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Authenticate records metrics for identity authentication.
func (a *authenticationUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	identity *authDomain.ExternalIdentity,
) *authDomain.AuthenticationOutcome {
	start := time.Now()
	outcome := a.next.Authenticate(ctx, identity)
	a.record(ctx, "authenticate", outcome, start)
	return outcome
}

// AuthenticateCredentials records metrics for credential login.
func (a *authenticationUseCaseWithMetrics) AuthenticateCredentials(
	ctx context.Context,
	credentials *authDomain.Credentials,
) *authDomain.AuthenticationOutcome {
	start := time.Now()
	outcome := a.next.AuthenticateCredentials(ctx, credentials)
	a.record(ctx, "authenticate_credentials", outcome, start)
	return outcome
}

// Refresh records metrics for session refresh.
func (a *authenticationUseCaseWithMetrics) Refresh(
	ctx context.Context,
	token string,
) *authDomain.AuthenticationOutcome {
	start := time.Now()
	outcome := a.next.Refresh(ctx, token)
	a.record(ctx, "refresh", outcome, start)
	return outcome
}
