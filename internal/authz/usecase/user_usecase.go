package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
	"github.com/allisson/portfolio-auth/internal/database"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
	appValidation "github.com/allisson/portfolio-auth/internal/validation"
)

// CreateUserInput contains the data needed to provision a user.
type CreateUserInput struct {
	Username     string
	Password     string
	Organization string
	Roles        []string
	Inactive     bool
}

// userUseCase implements UserUseCase.
type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	passwordHasher PasswordHasher
}

// NewUserUseCase creates a UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordHasher PasswordHasher,
) UserUseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
	}
}

// validateCreateUserInput checks the username shape, password strength when a password is
// given (SSO-only users have none) and role names.
func validateCreateUserInput(input CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(1, 255).Error("username must be between 1 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.When(input.Password != "",
				validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
				appValidation.UserPassword,
			),
		),
		validation.Field(&input.Roles,
			validation.Each(
				validation.Required.Error("role name is required"),
				appValidation.NotBlank,
				appValidation.RoleName,
			),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateUser validates input, hashes the password and stores the user with its organization
// and roles in a single transaction.
func (u *userUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*authzDomain.User, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	user := &authzDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Username:  input.Username,
		IsActive:  !input.Inactive,
		Roles:     make([]authzDomain.Role, 0, len(input.Roles)),
		CreatedAt: time.Now().UTC(),
	}

	if input.Password != "" {
		hash, err := u.passwordHasher.Hash(input.Password)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash
	}

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if name := strings.TrimSpace(input.Organization); name != "" {
			organization, err := u.userRepo.GetOrganizationByName(ctx, name)
			if err != nil {
				return err
			}
			user.Organization = organization
		}

		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}

		for _, roleName := range input.Roles {
			roleName = strings.TrimSpace(roleName)
			if err := u.userRepo.AssignRole(ctx, user, roleName); err != nil {
				return apperrors.Wrapf(err, "role %s", roleName)
			}
			user.Roles = append(user.Roles, authzDomain.Role{Name: roleName})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
