// Package mocks provides testify mock implementations of the auth use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	authUseCase "github.com/allisson/portfolio-auth/internal/auth/usecase"
)

// MockTokenUseCase is a mock implementation of TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	username string,
	authorities []string,
	sessionID string,
) (*authDomain.IssuedToken, error) {
	args := m.Called(ctx, username, authorities, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

func (m *MockTokenUseCase) Validate(ctx context.Context, token string) *authDomain.ValidationOutcome {
	args := m.Called(ctx, token)
	return args.Get(0).(*authDomain.ValidationOutcome)
}

func (m *MockTokenUseCase) Refresh(ctx context.Context, token string) (*authDomain.IssuedToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

func (m *MockTokenUseCase) IsExpired(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

func (m *MockTokenUseCase) ExtractUsername(token string) (string, bool) {
	args := m.Called(token)
	return args.String(0), args.Bool(1)
}

func (m *MockTokenUseCase) ExtractAuthorities(token string) ([]string, bool) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]string), args.Bool(1)
}

// MockAuthenticationUseCase is a mock implementation of AuthenticationUseCase.
type MockAuthenticationUseCase struct {
	mock.Mock
}

func (m *MockAuthenticationUseCase) Authenticate(
	ctx context.Context,
	identity *authDomain.ExternalIdentity,
) *authDomain.AuthenticationOutcome {
	args := m.Called(ctx, identity)
	return args.Get(0).(*authDomain.AuthenticationOutcome)
}

func (m *MockAuthenticationUseCase) AuthenticateCredentials(
	ctx context.Context,
	credentials *authDomain.Credentials,
) *authDomain.AuthenticationOutcome {
	args := m.Called(ctx, credentials)
	return args.Get(0).(*authDomain.AuthenticationOutcome)
}

func (m *MockAuthenticationUseCase) Refresh(ctx context.Context, token string) *authDomain.AuthenticationOutcome {
	args := m.Called(ctx, token)
	return args.Get(0).(*authDomain.AuthenticationOutcome)
}

// MockAuditRecorder is a mock implementation of AuditRecorder.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(
	ctx context.Context,
	eventType authDomain.AuditEventType,
	username, sessionID string,
	metadata map[string]any,
) error {
	args := m.Called(ctx, eventType, username, sessionID, metadata)
	return args.Error(0)
}

// MockAuditEventUseCase is a mock implementation of AuditEventUseCase.
type MockAuditEventUseCase struct {
	MockAuditRecorder
}

func (m *MockAuditEventUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditEvent, error) {
	args := m.Called(ctx, offset, limit, createdAtFrom, createdAtTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditEvent), args.Error(1)
}

func (m *MockAuditEventUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditEventUseCase) Verify(event *authDomain.AuditEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockAuditEventUseCase) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*authUseCase.VerificationReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.VerificationReport), args.Error(1)
}

// MockAuditEventRepository is a mock implementation of AuditEventRepository.
type MockAuditEventRepository struct {
	mock.Mock
}

func (m *MockAuditEventRepository) Create(ctx context.Context, event *authDomain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditEventRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditEvent, error) {
	args := m.Called(ctx, offset, limit, createdAtFrom, createdAtTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditEvent), args.Error(1)
}

func (m *MockAuditEventRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
