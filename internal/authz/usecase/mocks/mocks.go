// Package mocks provides testify mock implementations of the authz use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
	authzUseCase "github.com/allisson/portfolio-auth/internal/authz/usecase"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*authzDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *authzDomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AssignRole(ctx context.Context, user *authzDomain.User, roleName string) error {
	args := m.Called(ctx, user, roleName)
	return args.Error(0)
}

func (m *MockUserRepository) GetOrganizationByName(
	ctx context.Context,
	name string,
) (*authzDomain.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.Organization), args.Error(1)
}

// MockAuthorizationUseCase is a mock implementation of AuthorizationUseCase.
type MockAuthorizationUseCase struct {
	mock.Mock
}

func (m *MockAuthorizationUseCase) Authorize(
	ctx context.Context,
	username, resource, action string,
) *authzDomain.AuthorizationDecision {
	args := m.Called(ctx, username, resource, action)
	return args.Get(0).(*authzDomain.AuthorizationDecision)
}

func (m *MockAuthorizationUseCase) Describe(ctx context.Context, username string) (*authzDomain.UserAccess, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.UserAccess), args.Error(1)
}

// MockUserUseCase is a mock implementation of UserUseCase.
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) CreateUser(
	ctx context.Context,
	input authzUseCase.CreateUserInput,
) (*authzDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authzDomain.User), args.Error(1)
}

// MockPasswordHasher is a mock implementation of PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// MockTxManager is a mock implementation of database.TxManager that runs fn inline unless an
// error is configured.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
