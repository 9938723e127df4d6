// Package domain defines the users, roles and permissions consulted by authorization decisions.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization scopes a user for downstream filtering.
type Organization struct {
	ID   uuid.UUID
	Name string
}

// Permission grants a single action on a resource. Name is the authority tag carried in tokens
// (for example READ_PORTFOLIO).
type Permission struct {
	ID       uuid.UUID
	Name     string
	Resource string
	Action   string
}

// Scope renders the permission as resource:action.
func (p Permission) Scope() string {
	return p.Resource + ":" + p.Action
}

// Matches reports whether the permission grants action on resource. Matching is exact.
func (p Permission) Matches(resource, action string) bool {
	return p.Resource == resource && p.Action == action
}

// Role groups permissions.
type Role struct {
	ID          uuid.UUID
	Name        string
	Permissions []Permission
}

// User is read from the backing store for every decision.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsActive     bool
	Organization *Organization
	Roles        []Role
	CreatedAt    time.Time
}

// HasPermission reports whether any role of the user grants action on resource. Several roles
// granting the same pair is not a conflict.
func (u *User) HasPermission(resource, action string) bool {
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			if permission.Matches(resource, action) {
				return true
			}
		}
	}
	return false
}

// RoleNames returns role names in the order of u.Roles without duplicates; never nil.
// Repositories load roles sorted by name, so stored users yield alphabetical names.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	seen := make(map[string]struct{}, len(u.Roles))
	for _, role := range u.Roles {
		if _, ok := seen[role.Name]; ok {
			continue
		}
		seen[role.Name] = struct{}{}
		names = append(names, role.Name)
	}
	return names
}

// PermissionNames returns the names of every permission reachable through the user's roles,
// deduplicated in first-seen order; never nil.
func (u *User) PermissionNames() []string {
	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, role := range u.Roles {
		for _, permission := range role.Permissions {
			if _, ok := seen[permission.Name]; ok {
				continue
			}
			seen[permission.Name] = struct{}{}
			names = append(names, permission.Name)
		}
	}
	return names
}

// OrganizationName returns the organization name or "" when the user has none.
func (u *User) OrganizationName() string {
	if u.Organization == nil {
		return ""
	}
	return u.Organization.Name
}
