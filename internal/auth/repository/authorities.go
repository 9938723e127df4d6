// Package repository provides PostgreSQL and MySQL persistence for the auth context.
package repository

import (
	"database/sql"
)

// authorityCollector accumulates the role and permission names of a user from joined rows,
// keeping first-seen order and dropping duplicates.
type authorityCollector struct {
	roles       []string
	permissions []string
	seen        map[string]struct{}
}

func newAuthorityCollector() *authorityCollector {
	return &authorityCollector{seen: make(map[string]struct{})}
}

func (c *authorityCollector) add(role, permission sql.NullString) {
	if role.Valid {
		if _, ok := c.seen["r:"+role.String]; !ok {
			c.seen["r:"+role.String] = struct{}{}
			c.roles = append(c.roles, role.String)
		}
	}
	if permission.Valid {
		if _, ok := c.seen["p:"+permission.String]; !ok {
			c.seen["p:"+permission.String] = struct{}{}
			c.permissions = append(c.permissions, permission.String)
		}
	}
}

// authorities returns role names followed by permission names; never nil.
func (c *authorityCollector) authorities() []string {
	result := make([]string, 0, len(c.roles)+len(c.permissions))
	result = append(result, c.roles...)
	return append(result, c.permissions...)
}
