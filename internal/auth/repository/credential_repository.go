package repository

import (
	"context"
	"database/sql"
	"fmt"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	"github.com/allisson/portfolio-auth/internal/database"
	apperrors "github.com/allisson/portfolio-auth/internal/errors"
)

// ErrUserNotFound indicates no user has the requested username.
var ErrUserNotFound = apperrors.Wrap(apperrors.ErrNotFound, "user not found")

const credentialQueryTemplate = `SELECT u.username, u.password_hash, u.is_active, r.name, p.name
			  FROM users u
			  LEFT JOIN user_roles ur ON ur.user_id = u.id
			  LEFT JOIN roles r ON r.id = ur.role_id
			  LEFT JOIN role_permissions rp ON rp.role_id = r.id
			  LEFT JOIN permissions p ON p.id = rp.permission_id
			  WHERE u.username = %s
			  ORDER BY r.name, p.name`

// SQLCredentialRepository loads stored credentials with one joined query. The same statement
// runs on PostgreSQL and MySQL apart from the placeholder.
type SQLCredentialRepository struct {
	db    *sql.DB
	query string
}

// GetCredential returns the password hash, active flag and authorities of username.
// Users without a password hash (SSO-only accounts) are returned with an empty hash.
func (s *SQLCredentialRepository) GetCredential(
	ctx context.Context,
	username string,
) (*authDomain.StoredCredential, error) {
	querier := database.GetTx(ctx, s.db)

	rows, err := querier.QueryContext(ctx, s.query, username)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query credential")
	}
	defer func() {
		_ = rows.Close()
	}()

	var credential *authDomain.StoredCredential
	collector := newAuthorityCollector()

	for rows.Next() {
		var name string
		var passwordHash, role, permission sql.NullString
		var isActive bool

		if err := rows.Scan(&name, &passwordHash, &isActive, &role, &permission); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}

		if credential == nil {
			credential = &authDomain.StoredCredential{
				Username:     name,
				PasswordHash: passwordHash.String,
				IsActive:     isActive,
			}
		}
		collector.add(role, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credential rows")
	}

	if credential == nil {
		return nil, ErrUserNotFound
	}

	credential.Authorities = collector.authorities()
	return credential, nil
}

// NewPostgreSQLCredentialRepository creates a credential repository for PostgreSQL.
func NewPostgreSQLCredentialRepository(db *sql.DB) *SQLCredentialRepository {
	return &SQLCredentialRepository{db: db, query: fmt.Sprintf(credentialQueryTemplate, "$1")}
}

// NewMySQLCredentialRepository creates a credential repository for MySQL.
func NewMySQLCredentialRepository(db *sql.DB) *SQLCredentialRepository {
	return &SQLCredentialRepository{db: db, query: fmt.Sprintf(credentialQueryTemplate, "?")}
}
