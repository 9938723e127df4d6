package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	authService "github.com/allisson/portfolio-auth/internal/auth/service"
)

// defaultAuditTimeout bounds a single audit write when WithAuditTimeout is not given.
const defaultAuditTimeout = 2 * time.Second

// authenticationUseCase implements AuthenticationUseCase.
type authenticationUseCase struct {
	tokenUseCase  TokenUseCase
	credentials   authService.CredentialAuthenticator
	auditRecorder AuditRecorder
	auditTimeout  time.Duration
	logger        *slog.Logger
}

// AuthenticationOption customizes an AuthenticationUseCase.
type AuthenticationOption func(*authenticationUseCase)

// WithAuditTimeout bounds each audit write. Non-positive values keep the default.
func WithAuditTimeout(timeout time.Duration) AuthenticationOption {
	return func(a *authenticationUseCase) {
		if timeout > 0 {
			a.auditTimeout = timeout
		}
	}
}

// Authenticate issues a token for identity.
//
// This method:
// 1. Rejects a nil or unauthenticated identity without issuing anything
// 2. Issues a token carrying the principal, authorities and session index
// 3. Records login_success and token_issued audit events
//
// Audit failures are logged and never change the outcome.
func (a *authenticationUseCase) Authenticate(
	ctx context.Context,
	identity *authDomain.ExternalIdentity,
) *authDomain.AuthenticationOutcome {
	if identity == nil || !identity.Authenticated {
		principal := ""
		if identity != nil {
			principal = identity.Principal
		}
		a.record(ctx, authDomain.EventLoginFailed, principal, "", map[string]any{
			"reason": authDomain.MsgNotAuthenticated,
		})
		return authDomain.NewAuthenticationFailure(authDomain.MsgNotAuthenticated)
	}

	issued, err := a.tokenUseCase.Issue(ctx, identity.Principal, identity.Authorities, identity.SessionID)
	if err != nil {
		a.record(ctx, authDomain.EventLoginFailed, identity.Principal, identity.SessionID, map[string]any{
			"reason": err.Error(),
		})
		return authDomain.NewAuthenticationFailure("token issuance failed: " + err.Error())
	}

	a.record(ctx, authDomain.EventLoginSuccess, identity.Principal, identity.SessionID, map[string]any{
		"authorities": issued.Claims.Authorities,
	})
	a.record(ctx, authDomain.EventTokenIssued, identity.Principal, identity.SessionID, map[string]any{
		"issued_at":  issued.Claims.IssuedAt.Format(time.RFC3339),
		"expires_at": issued.Claims.ExpiresAt.Format(time.RFC3339),
	})

	return authDomain.NewAuthenticationSuccess(issued)
}

// AuthenticateCredentials verifies credentials with the mock credential authenticator and
// then behaves like Authenticate.
func (a *authenticationUseCase) AuthenticateCredentials(
	ctx context.Context,
	credentials *authDomain.Credentials,
) *authDomain.AuthenticationOutcome {
	if a.credentials == nil {
		return authDomain.NewAuthenticationFailure(authDomain.MsgCredentialLoginDisabled)
	}

	identity, err := a.credentials.Authenticate(ctx, credentials)
	if err != nil {
		if errors.Is(err, authDomain.ErrInvalidCredentials) {
			username := ""
			if credentials != nil {
				username = credentials.Username
			}
			return a.Authenticate(ctx, &authDomain.ExternalIdentity{Authenticated: false, Principal: username})
		}

		a.logger.ErrorContext(ctx, "credential authentication failed", slog.Any("error", err))
		return authDomain.NewAuthenticationFailure(authDomain.MsgAuthenticationUnavailable)
	}

	return a.Authenticate(ctx, identity)
}

// Refresh re-issues token and records a token_refreshed event on success.
func (a *authenticationUseCase) Refresh(ctx context.Context, token string) *authDomain.AuthenticationOutcome {
	issued, err := a.tokenUseCase.Refresh(ctx, token)
	if err != nil {
		a.logger.DebugContext(ctx, "token refresh rejected", slog.Any("error", err))
		return authDomain.NewAuthenticationFailure(err.Error())
	}

	a.record(ctx, authDomain.EventTokenRefreshed, issued.Claims.Subject, issued.Claims.SessionID, map[string]any{
		"expires_at": issued.Claims.ExpiresAt.Format(time.RFC3339),
	})

	return authDomain.NewAuthenticationSuccess(issued)
}

func (a *authenticationUseCase) record(
	ctx context.Context,
	eventType authDomain.AuditEventType,
	username, sessionID string,
	metadata map[string]any,
) {
	// The write outlives a cancelled request but never holds a login longer than auditTimeout.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.auditTimeout)
	defer cancel()

	if err := a.auditRecorder.Record(auditCtx, eventType, username, sessionID, metadata); err != nil {
		a.logger.WarnContext(ctx, "failed to record audit event",
			slog.String("event_type", string(eventType)),
			slog.String("username", username),
			slog.Any("error", err),
		)
	}
}

// NewAuthenticationUseCase creates an AuthenticationUseCase. credentials may be nil, which
// disables AuthenticateCredentials.
func NewAuthenticationUseCase(
	tokenUseCase TokenUseCase,
	credentials authService.CredentialAuthenticator,
	auditRecorder AuditRecorder,
	logger *slog.Logger,
	opts ...AuthenticationOption,
) AuthenticationUseCase {
	a := &authenticationUseCase{
		tokenUseCase:  tokenUseCase,
		credentials:   credentials,
		auditRecorder: auditRecorder,
		auditTimeout:  defaultAuditTimeout,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
