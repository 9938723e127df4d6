// Package repository provides PostgreSQL and MySQL persistence for users, roles and permissions.
package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
)

// userQueryTemplate loads a user with organization, roles and permissions in one round trip.
// The only dialect difference is the placeholder.
const userQueryTemplate = `SELECT u.id, u.username, u.password_hash, u.is_active, u.created_at,
			  o.id, o.name, r.id, r.name, p.id, p.name, p.resource, p.action
			  FROM users u
			  LEFT JOIN organizations o ON o.id = u.organization_id
			  LEFT JOIN user_roles ur ON ur.user_id = u.id
			  LEFT JOIN roles r ON r.id = ur.role_id
			  LEFT JOIN role_permissions rp ON rp.role_id = r.id
			  LEFT JOIN permissions p ON p.id = rp.permission_id
			  WHERE u.username = %s
			  ORDER BY r.name, p.name`

// userRow is one row of userQueryTemplate. uuid.NullUUID scans both native UUID text and
// BINARY(16) columns.
type userRow struct {
	userID         uuid.UUID
	username       string
	passwordHash   sql.NullString
	isActive       bool
	createdAt      time.Time
	orgID          uuid.NullUUID
	orgName        sql.NullString
	roleID         uuid.NullUUID
	roleName       sql.NullString
	permissionID   uuid.NullUUID
	permissionName sql.NullString
	resource       sql.NullString
	action         sql.NullString
}

func (r *userRow) scanTargets(userID any) []any {
	return []any{
		userID, &r.username, &r.passwordHash, &r.isActive, &r.createdAt,
		&r.orgID, &r.orgName, &r.roleID, &r.roleName,
		&r.permissionID, &r.permissionName, &r.resource, &r.action,
	}
}

// userAssembler folds joined rows into a single User.
type userAssembler struct {
	user      *authzDomain.User
	roleIndex map[uuid.UUID]int
}

func newUserAssembler() *userAssembler {
	return &userAssembler{roleIndex: make(map[uuid.UUID]int)}
}

func (a *userAssembler) add(row *userRow) {
	if a.user == nil {
		a.user = &authzDomain.User{
			ID:           row.userID,
			Username:     row.username,
			PasswordHash: row.passwordHash.String,
			IsActive:     row.isActive,
			CreatedAt:    row.createdAt.UTC(),
			Roles:        make([]authzDomain.Role, 0),
		}
		if row.orgID.Valid {
			a.user.Organization = &authzDomain.Organization{ID: row.orgID.UUID, Name: row.orgName.String}
		}
	}

	if !row.roleID.Valid {
		return
	}

	idx, ok := a.roleIndex[row.roleID.UUID]
	if !ok {
		a.user.Roles = append(a.user.Roles, authzDomain.Role{
			ID:          row.roleID.UUID,
			Name:        row.roleName.String,
			Permissions: make([]authzDomain.Permission, 0),
		})
		idx = len(a.user.Roles) - 1
		a.roleIndex[row.roleID.UUID] = idx
	}

	if row.permissionID.Valid {
		a.user.Roles[idx].Permissions = append(a.user.Roles[idx].Permissions, authzDomain.Permission{
			ID:       row.permissionID.UUID,
			Name:     row.permissionName.String,
			Resource: row.resource.String,
			Action:   row.action.String,
		})
	}
}
