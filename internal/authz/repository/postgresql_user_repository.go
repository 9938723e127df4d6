package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
	"github.com/allisson/portfolio-auth/internal/database"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
)

const pgUniqueViolation = "23505"

// PostgreSQLUserRepository handles user, role assignment and organization lookups for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// GetByUsername loads username together with its organization, roles and permissions.
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*authzDomain.User, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, fmt.Sprintf(userQueryTemplate, "$1"), username)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query user")
	}
	defer func() {
		_ = rows.Close()
	}()

	assembler := newUserAssembler()
	for rows.Next() {
		var row userRow
		if err := rows.Scan(row.scanTargets(&row.userID)...); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		assembler.add(&row)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user rows")
	}

	if assembler.user == nil {
		return nil, authzDomain.ErrUserNotFound
	}

	return assembler.user, nil
}

// Create inserts user. Roles are assigned separately with AssignRole.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *authzDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	var organizationID any
	if user.Organization != nil {
		organizationID = user.Organization.ID
	}

	var passwordHash any
	if user.PasswordHash != "" {
		passwordHash = user.PasswordHash
	}

	query := `INSERT INTO users (id, username, password_hash, is_active, organization_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		passwordHash,
		user.IsActive,
		organizationID,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return authzDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// AssignRole links user to the role named roleName. Returns ErrRoleNotFound when no role has
// that name.
func (r *PostgreSQLUserRepository) AssignRole(ctx context.Context, user *authzDomain.User, roleName string) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO user_roles (user_id, role_id)
			  SELECT $1, id FROM roles WHERE name = $2
			  ON CONFLICT DO NOTHING`

	result, err := querier.ExecContext(ctx, query, user.ID, roleName)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role")
	}

	return checkRoleAssigned(ctx, querier, result, `SELECT COUNT(*) FROM roles WHERE name = $1`, roleName)
}

// GetOrganizationByName returns the organization called name.
func (r *PostgreSQLUserRepository) GetOrganizationByName(
	ctx context.Context,
	name string,
) (*authzDomain.Organization, error) {
	querier := database.GetTx(ctx, r.db)

	var organization authzDomain.Organization
	err := querier.QueryRowContext(ctx, `SELECT id, name FROM organizations WHERE name = $1`, name).
		Scan(&organization.ID, &organization.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}

	return &organization, nil
}

// checkRoleAssigned distinguishes an unknown role from an assignment that already existed when
// the insert affected no rows.
func checkRoleAssigned(
	ctx context.Context,
	querier database.Querier,
	result sql.Result,
	countQuery, roleName string,
) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read assigned role count")
	}
	if affected > 0 {
		return nil
	}

	var count int
	if err := querier.QueryRowContext(ctx, countQuery, roleName).Scan(&count); err != nil {
		return apperrors.Wrap(err, "failed to check role")
	}
	if count == 0 {
		return authzDomain.ErrRoleNotFound
	}
	return nil
}
