package domain

import (
	"github.com/allisson/portfolio-auth/internal/errors"
)

// Domain-specific errors for authorization data.
var (
	// ErrUserNotFound indicates no user has the requested username.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates the username is taken.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrRoleNotFound indicates a role name that is not defined.
	ErrRoleNotFound = errors.Wrap(errors.ErrInvalidInput, "role not found")

	// ErrOrganizationNotFound indicates an organization name that is not defined.
	ErrOrganizationNotFound = errors.Wrap(errors.ErrInvalidInput, "organization not found")

	// ErrUsernameRequired indicates a blank username.
	ErrUsernameRequired = errors.Wrap(errors.ErrInvalidInput, "username is required")
)
