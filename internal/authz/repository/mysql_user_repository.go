package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
	"github.com/allisson/portfolio-auth/internal/database"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
)

const mysqlDuplicateEntry = 1062

// MySQLUserRepository handles user, role assignment and organization lookups for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// GetByUsername loads username together with its organization, roles and permissions.
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*authzDomain.User, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(ctx, fmt.Sprintf(userQueryTemplate, "?"), username)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query user")
	}
	defer func() {
		_ = rows.Close()
	}()

	assembler := newUserAssembler()
	for rows.Next() {
		var row userRow
		var idBytes []byte
		if err := rows.Scan(row.scanTargets(&idBytes)...); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		if err := row.userID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal user id")
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
func (r *MySQLUserRepository) Create(ctx context.Context, user *authzDomain.User) error {
	querier := database.GetTx(ctx, r.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	var organizationID any
	if user.Organization != nil {
		if organizationID, err = user.Organization.ID.MarshalBinary(); err != nil {
			return apperrors.Wrap(err, "failed to marshal organization id")
		}
	}

	var passwordHash any
	if user.PasswordHash != "" {
		passwordHash = user.PasswordHash
	}

	query := `INSERT INTO users (id, username, password_hash, is_active, organization_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, user.Username, passwordHash, user.IsActive, organizationID, user.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return authzDomain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// AssignRole links user to the role named roleName. Returns ErrRoleNotFound when no role has
// that name.
func (r *MySQLUserRepository) AssignRole(ctx context.Context, user *authzDomain.User, roleName string) error {
	querier := database.GetTx(ctx, r.db)

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	query := `INSERT IGNORE INTO user_roles (user_id, role_id)
			  SELECT ?, id FROM roles WHERE name = ?`

	result, err := querier.ExecContext(ctx, query, id, roleName)
	if err != nil {
		return apperrors.Wrap(err, "failed to assign role")
	}

	return checkRoleAssigned(ctx, querier, result, `SELECT COUNT(*) FROM roles WHERE name = ?`, roleName)
}

// GetOrganizationByName returns the organization called name.
func (r *MySQLUserRepository) GetOrganizationByName(
	ctx context.Context,
	name string,
) (*authzDomain.Organization, error) {
	querier := database.GetTx(ctx, r.db)

	var organization authzDomain.Organization
	var idBytes []byte
	err := querier.QueryRowContext(ctx, `SELECT id, name FROM organizations WHERE name = ?`, name).
		Scan(&idBytes, &organization.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authzDomain.ErrOrganizationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get organization")
	}

	if err := organization.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal organization id")
	}

	return &organization, nil
}
