package dto

import (
	authzDomain "github.com/allisson/portfolio-auth/internal/authz/domain"
)

// DecisionResponse represents an authorization decision in API responses.
type DecisionResponse struct {
	Authorized   bool     `json:"authorized"`
	Username     string   `json:"username"`
	Resource     string   `json:"resource"`
	Action       string   `json:"action"`
	Permissions  []string `json:"permissions,omitempty"`
	Roles        []string `json:"roles,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Reason       string   `json:"reason,omitempty"`
}

// MapDecisionToResponse converts a domain decision to an API response.
func MapDecisionToResponse(decision *authzDomain.AuthorizationDecision) DecisionResponse {
	return DecisionResponse{
		Authorized:   decision.Authorized,
		Username:     decision.Username,
		Resource:     decision.Resource,
		Action:       decision.Action,
		Permissions:  decision.Permissions,
		Roles:        decision.Roles,
		Organization: decision.Organization,
		Reason:       decision.Reason,
	}
}

// HasAccessDetails reports whether the response carries the subject's access bundle.
func (r DecisionResponse) HasAccessDetails() bool {
	return len(r.Permissions) > 0 || len(r.Roles) > 0 || r.Organization != ""
}

// WithoutAccessDetails returns a copy that keeps the verdict and reason but drops the
// permissions, roles and organization of the subject.
func (r DecisionResponse) WithoutAccessDetails() DecisionResponse {
	r.Permissions = nil
	r.Roles = nil
	r.Organization = ""
	return r
}

// UserAccessResponse represents the permission bundle of a user.
type UserAccessResponse struct {
	Username     string   `json:"username"`
	IsActive     bool     `json:"is_active"`
	Permissions  []string `json:"permissions"`
	Roles        []string `json:"roles"`
	Organization string   `json:"organization,omitempty"`
}

// MapUserAccessToResponse converts a domain access bundle to an API response.
func MapUserAccessToResponse(access *authzDomain.UserAccess) UserAccessResponse {
	return UserAccessResponse{
		Username:     access.Username,
		IsActive:     access.IsActive,
		Permissions:  nonNil(access.Permissions),
		Roles:        nonNil(access.Roles),
		Organization: access.Organization,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
