package domain

import "fmt"

// Denial reasons surfaced to callers.
const (
	ReasonUserInactive      = "user not active or does not exist"
	ReasonInvalidRequest    = "invalid authorization request"
	reasonPermissionDenied  = "permission denied for %s:%s"
	reasonCheckFailedPrefix = "authorization check failed: "
)

// AuthorizationDecision is the result of a permission check. Username, Resource and Action always
// echo the request. Permissions, Roles and Organization are only filled on a grant.
type AuthorizationDecision struct {
	Authorized   bool
	Username     string
	Resource     string
	Action       string
	Permissions  []string
	Roles        []string
	Organization string
	Reason       string
}

// UserAccess is the permission bundle of a user, returned without deciding anything.
type UserAccess struct {
	Username     string
	IsActive     bool
	Permissions  []string
	Roles        []string
	Organization string
}

// NewGrant builds a positive decision carrying the access bundle of user.
func NewGrant(user *User, resource, action string) *AuthorizationDecision {
	return &AuthorizationDecision{
		Authorized:   true,
		Username:     user.Username,
		Resource:     resource,
		Action:       action,
		Permissions:  user.PermissionNames(),
		Roles:        user.RoleNames(),
		Organization: user.OrganizationName(),
	}
}

// NewDenial builds a negative decision with reason.
func NewDenial(username, resource, action, reason string) *AuthorizationDecision {
	return &AuthorizationDecision{
		Username: username,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

// NewPermissionDenial names the denied resource and action in the reason.
func NewPermissionDenial(username, resource, action string) *AuthorizationDecision {
	return NewDenial(username, resource, action, fmt.Sprintf(reasonPermissionDenied, resource, action))
}

// NewFailureDenial embeds the lookup error text in the reason.
func NewFailureDenial(username, resource, action string, err error) *AuthorizationDecision {
	return NewDenial(username, resource, action, reasonCheckFailedPrefix+err.Error())
}

// NewUserAccess builds the access bundle of user.
func NewUserAccess(user *User) *UserAccess {
	return &UserAccess{
		Username:     user.Username,
		IsActive:     user.IsActive,
		Permissions:  user.PermissionNames(),
		Roles:        user.RoleNames(),
		Organization: user.OrganizationName(),
	}
}
