package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
	authzUseCase "github.com/allisson/portfolio-auth/internal/authz/usecase"
	authzMocks "github.com/allisson/portfolio-auth/internal/authz/usecase/mocks"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
)

func testUser() *authzDomain.User {
	return &authzDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     "alice",
		PasswordHash: "$argon2id$hash",
		IsActive:     true,
		Organization: &authzDomain.Organization{ID: uuid.New(), Name: "Acme Capital"},
		Roles: []authzDomain.Role{
			{
				ID:   uuid.New(),
				Name: "ROLE_ANALYST",
				Permissions: []authzDomain.Permission{
					{ID: uuid.New(), Name: "READ_PORTFOLIO", Resource: "portfolio", Action: "read"},
				},
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestRunAuthorize(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("granted-text", func(t *testing.T) {
		mockUseCase := &authzMocks.MockAuthorizationUseCase{}
		mockUseCase.On("Authorize", ctx, "alice", "portfolio", "read").
			Return(authzDomain.NewGrant(testUser(), "portfolio", "read"))

		var out bytes.Buffer
		err := RunAuthorize(ctx, mockUseCase, logger, IOTuple{Writer: &out}, "alice", "portfolio", "read", "text")

		require.NoError(t, err)
		assert.Contains(t, out.String(), "GRANTED: alice may read portfolio")
		assert.Contains(t, out.String(), "Roles: ROLE_ANALYST")
		assert.Contains(t, out.String(), "Permissions: READ_PORTFOLIO")
		assert.Contains(t, out.String(), "Organization: Acme Capital")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("denied-json", func(t *testing.T) {
		mockUseCase := &authzMocks.MockAuthorizationUseCase{}
		mockUseCase.On("Authorize", ctx, "alice", "portfolio", "delete").
			Return(authzDomain.NewPermissionDenial("alice", "portfolio", "delete"))

		var out bytes.Buffer
		err := RunAuthorize(ctx, mockUseCase, logger, IOTuple{Writer: &out}, "alice", "portfolio", "delete", "json")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAccessDenied)

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, false, result["authorized"])
		assert.Equal(t, []any{}, result["permissions"])
		assert.NotEmpty(t, result["reason"])
	})

	t.Run("denied-text", func(t *testing.T) {
		mockUseCase := &authzMocks.MockAuthorizationUseCase{}
		mockUseCase.On("Authorize", ctx, "", "portfolio", "read").
			Return(authzDomain.NewDenial("", "portfolio", "read", "Username is required"))

		var out bytes.Buffer
		err := RunAuthorize(ctx, mockUseCase, logger, IOTuple{Writer: &out}, "", "portfolio", "read", "text")

		require.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, "DENIED: Username is required\n", out.String())
	})
}

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("password-from-stdin-text", func(t *testing.T) {
		user := testUser()
		mockUseCase := &authzMocks.MockUserUseCase{}
		mockUseCase.On("CreateUser", ctx, authzUseCase.CreateUserInput{
			Username:     "alice",
			Password:     "S3cure!Passw0rd",
			Organization: "Acme Capital",
			Roles:        []string{"ROLE_ANALYST"},
		}).Return(user, nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger,
			IOTuple{Reader: strings.NewReader("S3cure!Passw0rd\n"), Writer: &out},
			CreateUserOptions{
				Username:      "alice",
				Organization:  "Acme Capital",
				Roles:         []string{"ROLE_ANALYST"},
				PasswordStdin: true,
				Format:        "text",
			},
		)

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Created user alice ("+user.ID.String()+")")
		assert.Contains(t, out.String(), "Organization: Acme Capital")
		assert.Contains(t, out.String(), "Roles: ROLE_ANALYST")
		assert.NotContains(t, out.String(), "S3cure!Passw0rd")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("federated-only-json", func(t *testing.T) {
		user := testUser()
		user.PasswordHash = ""
		user.Organization = nil
		mockUseCase := &authzMocks.MockUserUseCase{}
		mockUseCase.On("CreateUser", ctx, authzUseCase.CreateUserInput{
			Username: "alice",
			Roles:    []string{"ROLE_ANALYST"},
			Inactive: true,
		}).Return(user, nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, IOTuple{Writer: &out}, CreateUserOptions{
			Username: "alice",
			Roles:    []string{"ROLE_ANALYST"},
			Inactive: true,
			Format:   "json",
		})
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, user.ID.String(), result["id"])
		assert.Equal(t, false, result["has_password"])
		assert.Equal(t, "", result["organization"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty-password-on-stdin", func(t *testing.T) {
		mockUseCase := &authzMocks.MockUserUseCase{}

		err := RunCreateUser(ctx, mockUseCase, logger,
			IOTuple{Reader: strings.NewReader("\n"), Writer: &bytes.Buffer{}},
			CreateUserOptions{Username: "alice", PasswordStdin: true, Format: "text"},
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "password read from stdin is empty")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &authzMocks.MockUserUseCase{}
		conflict := apperrors.Wrap(apperrors.ErrConflict, "user already exists")
		mockUseCase.On("CreateUser", ctx, authzUseCase.CreateUserInput{Username: "alice"}).Return(nil, conflict)

		err := RunCreateUser(ctx, mockUseCase, logger, IOTuple{Writer: &bytes.Buffer{}}, CreateUserOptions{
			Username: "alice",
			Format:   "text",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
	})
}
