// Package usecase implements authorization decisions and user provisioning.
package usecase

import (
	"context"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
)

// UserRepository reads and provisions users with their roles and organization.
type UserRepository interface {
	// GetByUsername loads a user with roles and permissions in one round trip. Returns
	// ErrUserNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*authzDomain.User, error)

	Create(ctx context.Context, user *authzDomain.User) error
	AssignRole(ctx context.Context, user *authzDomain.User, roleName string) error
	GetOrganizationByName(ctx context.Context, name string) (*authzDomain.Organization, error)
}

// AuthorizationUseCase decides whether a user may perform an action on a resource.
type AuthorizationUseCase interface {
	// Authorize always returns a decision; failures are denials with a reason.
	Authorize(ctx context.Context, username, resource, action string) *authzDomain.AuthorizationDecision

	// Describe returns the permission bundle of username without deciding anything.
	Describe(ctx context.Context, username string) (*authzDomain.UserAccess, error)
}

// UserUseCase provisions users for credential login.
type UserUseCase interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*authzDomain.User, error)
}

// PasswordHasher hashes user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
