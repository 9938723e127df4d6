package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	authzUseCase "github.com/allisson/portfolio-auth/internal/authz/usecase"
)

// ErrAccessDenied is returned by RunAuthorize when the decision is a denial.
var ErrAccessDenied = errors.New("access denied")

// RunAuthorize asks for a decision on (username, resource, action) and prints it. A denial is
// printed and then returned as ErrAccessDenied.
func RunAuthorize(
	ctx context.Context,
	authorizationUseCase authzUseCase.AuthorizationUseCase,
	logger *slog.Logger,
	io IOTuple,
	username, resource, action string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	decision := authorizationUseCase.Authorize(ctx, username, resource, action)

	logger.Info("authorization decided",
		slog.String("username", username),
		slog.String("resource", resource),
		slog.String("action", action),
		slog.Bool("authorized", decision.Authorized),
	)

	if format == FormatJSON {
		if err := writeJSON(io.Writer, map[string]any{
			"authorized":   decision.Authorized,
			"username":     decision.Username,
			"resource":     decision.Resource,
			"action":       decision.Action,
			"permissions":  nonNil(decision.Permissions),
			"roles":        nonNil(decision.Roles),
			"organization": decision.Organization,
			"reason":       decision.Reason,
		}); err != nil {
			return err
		}
	} else if decision.Authorized {
		_, _ = fmt.Fprintf(io.Writer, "GRANTED: %s may %s %s\n", decision.Username, decision.Action, decision.Resource)
		_, _ = fmt.Fprintf(io.Writer, "Roles: %s\n", strings.Join(decision.Roles, ", "))
		_, _ = fmt.Fprintf(io.Writer, "Permissions: %s\n", strings.Join(decision.Permissions, ", "))
		if decision.Organization != "" {
			_, _ = fmt.Fprintf(io.Writer, "Organization: %s\n", decision.Organization)
		}
	} else {
		_, _ = fmt.Fprintf(io.Writer, "DENIED: %s\n", decision.Reason)
	}

	if !decision.Authorized {
		return fmt.Errorf("%w: %s", ErrAccessDenied, decision.Reason)
	}
	return nil
}

// CreateUserOptions carries the create-user flags.
type CreateUserOptions struct {
	Username      string
	Organization  string
	Roles         []string
	Inactive      bool
	PasswordStdin bool
	Format        string
}

// RunCreateUser provisions a user with its organization and roles. With PasswordStdin the
// password is read as one line from io.Reader; without it the user has no password and can only
// sign in through the federated flow.
func RunCreateUser(
	ctx context.Context,
	userUseCase authzUseCase.UserUseCase,
	logger *slog.Logger,
	io IOTuple,
	opts CreateUserOptions,
) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}

	var password string
	if opts.PasswordStdin {
		line, err := readLine(io.Reader)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if line == "" {
			return fmt.Errorf("password read from stdin is empty")
		}
		password = line
	}

	user, err := userUseCase.CreateUser(ctx, authzUseCase.CreateUserInput{
		Username:     opts.Username,
		Password:     password,
		Organization: opts.Organization,
		Roles:        opts.Roles,
		Inactive:     opts.Inactive,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)

	if opts.Format == FormatJSON {
		return writeJSON(io.Writer, map[string]any{
			"id":           user.ID.String(),
			"username":     user.Username,
			"active":       user.IsActive,
			"organization": user.OrganizationName(),
			"roles":        nonNil(user.RoleNames()),
			"has_password": user.PasswordHash != "",
		})
	}

	_, _ = fmt.Fprintf(io.Writer, "Created user %s (%s)\n", user.Username, user.ID)
	_, _ = fmt.Fprintf(io.Writer, "Active: %t\n", user.IsActive)
	if name := user.OrganizationName(); name != "" {
		_, _ = fmt.Fprintf(io.Writer, "Organization: %s\n", name)
	}
	_, _ = fmt.Fprintf(io.Writer, "Roles: %s\n", strings.Join(user.RoleNames(), ", "))
	return nil
}
