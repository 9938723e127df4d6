package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	"github.com/allisson/portfolio-auth/internal/auth/usecase"
	usecaseMocks "github.com/allisson/portfolio-auth/internal/auth/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetric(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "auth", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "auth", operation, mock.AnythingOfType("time.Duration"), status).Return().Once()
}

func TestTokenUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Issue success", func(t *testing.T) {
		next := &usecaseMocks.MockTokenUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(next, m)
		issued := issuedToken("user1", nil, "")

		next.On("Issue", ctx, "user1", []string(nil), "").Return(issued, nil).Once()
		expectMetric(ctx, m, "token_issue", "success")

		res, err := uc.Issue(ctx, "user1", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, issued, res)
		m.AssertExpectations(t)
	})

	t.Run("Issue error", func(t *testing.T) {
		next := &usecaseMocks.MockTokenUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(next, m)

		next.On("Issue", ctx, "", []string(nil), "").Return(nil, authDomain.ErrUsernameRequired).Once()
		expectMetric(ctx, m, "token_issue", "error")

		_, err := uc.Issue(ctx, "", nil, "")
		assert.ErrorIs(t, err, authDomain.ErrUsernameRequired)
		m.AssertExpectations(t)
	})

	t.Run("Validate labels status", func(t *testing.T) {
		next := &usecaseMocks.MockTokenUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(next, m)
		outcome := authDomain.NewExpiredOutcome(&authDomain.TokenClaims{Subject: "user1"})

		next.On("Validate", ctx, "tok").Return(outcome).Once()
		expectMetric(ctx, m, "token_validate", "expired")

		assert.Equal(t, outcome, uc.Validate(ctx, "tok"))
		m.AssertExpectations(t)
	})

	t.Run("Refresh error", func(t *testing.T) {
		next := &usecaseMocks.MockTokenUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(next, m)

		next.On("Refresh", ctx, "tok").Return(nil, errors.New("boom")).Once()
		expectMetric(ctx, m, "token_refresh", "error")

		_, err := uc.Refresh(ctx, "tok")
		assert.Error(t, err)
		m.AssertExpectations(t)
	})

	t.Run("Extractors are not recorded", func(t *testing.T) {
		next := &usecaseMocks.MockTokenUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(next, m)

		next.On("ExtractUsername", "tok").Return("user1", true).Once()
		next.On("ExtractAuthorities", "tok").Return([]string{"A"}, true).Once()
		next.On("IsExpired", ctx, "tok").Return(false).Once()

		username, ok := uc.ExtractUsername("tok")
		assert.True(t, ok)
		assert.Equal(t, "user1", username)
		authorities, ok := uc.ExtractAuthorities("tok")
		assert.True(t, ok)
		assert.Equal(t, []string{"A"}, authorities)
		assert.False(t, uc.IsExpired(ctx, "tok"))
		m.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthenticationUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Authenticate success", func(t *testing.T) {
		next := &usecaseMocks.MockAuthenticationUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewAuthenticationUseCaseWithMetrics(next, m)
		identity := &authDomain.ExternalIdentity{Authenticated: true, Principal: "user1"}
		outcome := authDomain.NewAuthenticationSuccess(issuedToken("user1", nil, ""))

		next.On("Authenticate", ctx, identity).Return(outcome).Once()
		expectMetric(ctx, m, "authenticate", "success")

		assert.Equal(t, outcome, uc.Authenticate(ctx, identity))
		m.AssertExpectations(t)
	})

	t.Run("AuthenticateCredentials failure", func(t *testing.T) {
		next := &usecaseMocks.MockAuthenticationUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewAuthenticationUseCaseWithMetrics(next, m)
		creds := &authDomain.Credentials{Username: "user1", Password: "x"}
		outcome := authDomain.NewAuthenticationFailure("identity not authenticated")

		next.On("AuthenticateCredentials", ctx, creds).Return(outcome).Once()
		expectMetric(ctx, m, "authenticate_credentials", "failure")

		assert.False(t, uc.AuthenticateCredentials(ctx, creds).Success)
		m.AssertExpectations(t)
	})

	t.Run("Refresh success", func(t *testing.T) {
		next := &usecaseMocks.MockAuthenticationUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewAuthenticationUseCaseWithMetrics(next, m)
		outcome := authDomain.NewAuthenticationSuccess(issuedToken("user1", nil, ""))

		next.On("Refresh", ctx, "tok").Return(outcome).Once()
		expectMetric(ctx, m, "refresh", "success")

		assert.True(t, uc.Refresh(ctx, "tok").Success)
		m.AssertExpectations(t)
	})
}
