package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	"github.com/allisson/portfolio-auth/internal/auth/usecase"
	usecaseMocks "github.com/allisson/portfolio-auth/internal/auth/usecase/mocks"
)

type mockCredentialAuthenticator struct {
	mock.Mock
}

func (m *mockCredentialAuthenticator) Authenticate(
	ctx context.Context,
	credentials *authDomain.Credentials,
) (*authDomain.ExternalIdentity, error) {
	args := m.Called(ctx, credentials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.ExternalIdentity), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func issuedToken(username string, authorities []string, sessionID string) *authDomain.IssuedToken {
	iat := time.Now().UTC().Truncate(time.Second)
	return &authDomain.IssuedToken{
		Token: "header.payload.signature",
		Claims: &authDomain.TokenClaims{
			Subject:     username,
			Authorities: authorities,
			SessionID:   sessionID,
			IssuedAt:    iat,
			ExpiresAt:   iat.Add(time.Hour),
		},
	}
}

// blockingRecorder stands in for an audit store that never answers.
type blockingRecorder struct {
	mu           sync.Mutex
	errsOnEntry  []error
	hadDeadlines []bool
}

func (b *blockingRecorder) Record(
	ctx context.Context,
	eventType authDomain.AuditEventType,
	username, sessionID string,
	metadata map[string]any,
) error {
	_, hasDeadline := ctx.Deadline()
	b.mu.Lock()
	b.errsOnEntry = append(b.errsOnEntry, ctx.Err())
	b.hadDeadlines = append(b.hadDeadlines, hasDeadline)
	b.mu.Unlock()

	<-ctx.Done()
	return ctx.Err()
}

func TestAuthenticationUseCase_AuditWritesAreBounded(t *testing.T) {
	authorities := []string{"ROLE_ANALYST", "READ_PORTFOLIO"}
	identity := &authDomain.ExternalIdentity{
		Authenticated: true,
		Principal:     "user1",
		Authorities:   authorities,
		SessionID:     "s-1",
	}

	t.Run("SlowStoreDoesNotStallLogin", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		tokenUC.On("Issue", mock.Anything, "user1", authorities, "s-1").
			Return(issuedToken("user1", authorities, "s-1"), nil).Once()
		recorder := &blockingRecorder{}

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger(),
			usecase.WithAuditTimeout(20*time.Millisecond))

		start := time.Now()
		outcome := uc.Authenticate(context.Background(), identity)

		require.True(t, outcome.Success)
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, []bool{true, true}, recorder.hadDeadlines)
	})

	t.Run("CancelledRequestStillRecords", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		tokenUC := &usecaseMocks.MockTokenUseCase{}
		tokenUC.On("Issue", mock.Anything, "user1", authorities, "s-1").
			Return(issuedToken("user1", authorities, "s-1"), nil).Once()
		recorder := &blockingRecorder{}

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger(),
			usecase.WithAuditTimeout(10*time.Millisecond))
		uc.Authenticate(ctx, identity)

		require.Len(t, recorder.errsOnEntry, 2)
		for _, err := range recorder.errsOnEntry {
			assert.NoError(t, err)
		}
	})
}

func TestAuthenticationUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	authorities := []string{"ROLE_PORTFOLIO_MANAGER", "READ_PORTFOLIO"}

	t.Run("Success_IssuesTokenAndRecordsEvents", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		issued := issuedToken("user1", authorities, "s-1")

		tokenUC.On("Issue", ctx, "user1", authorities, "s-1").Return(issued, nil).Once()
		recorder.On("Record", mock.Anything, authDomain.EventLoginSuccess, "user1", "s-1", mock.Anything).Return(nil).Once()
		recorder.On("Record", mock.Anything, authDomain.EventTokenIssued, "user1", "s-1", mock.Anything).Return(nil).Once()

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger())
		outcome := uc.Authenticate(ctx, &authDomain.ExternalIdentity{
			Authenticated: true,
			Principal:     "user1",
			Authorities:   authorities,
			SessionID:     "s-1",
		})

		require.True(t, outcome.Success)
		assert.Equal(t, "user1", outcome.Username)
		assert.Equal(t, authorities, outcome.Authorities)
		assert.Equal(t, issued.Token, outcome.Token)
		assert.Equal(t, "s-1", outcome.SessionID)
		tokenUC.AssertExpectations(t)
		recorder.AssertExpectations(t)
	})

	t.Run("Failure_UnauthenticatedIdentity", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		recorder.On("Record", mock.Anything, authDomain.EventLoginFailed, "user1", "", mock.Anything).Return(nil).Once()

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger())
		outcome := uc.Authenticate(ctx, &authDomain.ExternalIdentity{Authenticated: false, Principal: "user1"})

		assert.False(t, outcome.Success)
		assert.Empty(t, outcome.Token)
		assert.Equal(t, "identity not authenticated", outcome.Error)
		tokenUC.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		recorder.AssertExpectations(t)
	})

	t.Run("Failure_NilIdentity", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		recorder.On("Record", mock.Anything, authDomain.EventLoginFailed, "", "", mock.Anything).Return(nil).Once()

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger())
		outcome := uc.Authenticate(ctx, nil)

		assert.False(t, outcome.Success)
		assert.Equal(t, "identity not authenticated", outcome.Error)
		tokenUC.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure_IssueError", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		tokenUC.On("Issue", ctx, "", []string(nil), "").Return(nil, authDomain.ErrUsernameRequired).Once()
		recorder.On("Record", mock.Anything, authDomain.EventLoginFailed, "", "", mock.Anything).Return(nil).Once()

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger())
		outcome := uc.Authenticate(ctx, &authDomain.ExternalIdentity{Authenticated: true})

		assert.False(t, outcome.Success)
		assert.Contains(t, outcome.Error, "token issuance failed")
		assert.Empty(t, outcome.Token)
	})

	t.Run("Success_AuditFailureDoesNotChangeOutcome", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		issued := issuedToken("user1", authorities, "")

		tokenUC.On("Issue", ctx, "user1", authorities, "").Return(issued, nil).Once()
		recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("audit store down")).Twice()

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger())
		outcome := uc.Authenticate(ctx, &authDomain.ExternalIdentity{
			Authenticated: true,
			Principal:     "user1",
			Authorities:   authorities,
		})

		assert.True(t, outcome.Success)
		assert.Equal(t, issued.Token, outcome.Token)
		recorder.AssertExpectations(t)
	})
}

func TestAuthenticationUseCase_AuthenticateCredentials(t *testing.T) {
	ctx := context.Background()
	creds := &authDomain.Credentials{Username: "user1", Password: "s3cret"}

	t.Run("Success_DelegatesToAuthenticate", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		authenticator := &mockCredentialAuthenticator{}
		identity := &authDomain.ExternalIdentity{
			Authenticated: true,
			Principal:     "user1",
			Authorities:   []string{"READ_PORTFOLIO"},
			SessionID:     "s-9",
		}

		authenticator.On("Authenticate", ctx, creds).Return(identity, nil).Once()
		tokenUC.On("Issue", ctx, "user1", identity.Authorities, "s-9").
			Return(issuedToken("user1", identity.Authorities, "s-9"), nil).Once()
		recorder.On("Record", mock.Anything, mock.Anything, "user1", "s-9", mock.Anything).Return(nil).Twice()

		uc := usecase.NewAuthenticationUseCase(tokenUC, authenticator, recorder, discardLogger())
		outcome := uc.AuthenticateCredentials(ctx, creds)

		assert.True(t, outcome.Success)
		assert.Equal(t, "s-9", outcome.SessionID)
		authenticator.AssertExpectations(t)
		tokenUC.AssertExpectations(t)
	})

	t.Run("Failure_InvalidCredentials", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		authenticator := &mockCredentialAuthenticator{}

		authenticator.On("Authenticate", ctx, creds).Return(nil, authDomain.ErrInvalidCredentials).Once()
		recorder.On("Record", mock.Anything, authDomain.EventLoginFailed, "user1", "", mock.Anything).Return(nil).Once()

		uc := usecase.NewAuthenticationUseCase(tokenUC, authenticator, recorder, discardLogger())
		outcome := uc.AuthenticateCredentials(ctx, creds)

		assert.False(t, outcome.Success)
		assert.Equal(t, "identity not authenticated", outcome.Error)
		recorder.AssertExpectations(t)
	})

	t.Run("Failure_StoreError", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		authenticator := &mockCredentialAuthenticator{}

		authenticator.On("Authenticate", ctx, creds).Return(nil, errors.New("connection refused")).Once()

		uc := usecase.NewAuthenticationUseCase(tokenUC, authenticator, recorder, discardLogger())
		outcome := uc.AuthenticateCredentials(ctx, creds)

		assert.False(t, outcome.Success)
		assert.NotContains(t, outcome.Error, "connection refused")
		recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure_Disabled", func(t *testing.T) {
		uc := usecase.NewAuthenticationUseCase(
			&usecaseMocks.MockTokenUseCase{},
			nil,
			&usecaseMocks.MockAuditRecorder{},
			discardLogger(),
		)

		outcome := uc.AuthenticateCredentials(ctx, creds)
		assert.False(t, outcome.Success)
		assert.Equal(t, "credential login is disabled", outcome.Error)
	})
}

func TestAuthenticationUseCase_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsRefresh", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		issued := issuedToken("user1", []string{"READ_PORTFOLIO"}, "s-1")

		tokenUC.On("Refresh", ctx, "old-token").Return(issued, nil).Once()
		recorder.On("Record", mock.Anything, authDomain.EventTokenRefreshed, "user1", "s-1", mock.Anything).Return(nil).Once()

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger())
		outcome := uc.Refresh(ctx, "old-token")

		assert.True(t, outcome.Success)
		assert.Equal(t, issued.Token, outcome.Token)
		recorder.AssertExpectations(t)
	})

	t.Run("Failure_Rejected", func(t *testing.T) {
		tokenUC := &usecaseMocks.MockTokenUseCase{}
		recorder := &usecaseMocks.MockAuditRecorder{}
		tokenUC.On("Refresh", ctx, "bad").Return(nil, authDomain.ErrTokenRefreshRejected).Once()

		uc := usecase.NewAuthenticationUseCase(tokenUC, nil, recorder, discardLogger())
		outcome := uc.Refresh(ctx, "bad")

		assert.False(t, outcome.Success)
		assert.Contains(t, outcome.Error, "token refresh rejected")
		recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
