package dto

import (
	"time"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
)

// AuthenticationResponse represents an authentication outcome in API responses.
type AuthenticationResponse struct {
	Success     bool       `json:"success"`
	Username    string     `json:"username,omitempty"`
	Authorities []string   `json:"authorities,omitempty"`
	Token       string     `json:"token,omitempty"` //nolint:gosec // issued to the caller
	SessionID   string     `json:"session_id,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// MapAuthenticationOutcomeToResponse converts a domain outcome to an API response.
func MapAuthenticationOutcomeToResponse(outcome *authDomain.AuthenticationOutcome) AuthenticationResponse {
	response := AuthenticationResponse{
		Success:     outcome.Success,
		Username:    outcome.Username,
		Authorities: outcome.Authorities,
		Token:       outcome.Token,
		SessionID:   outcome.SessionID,
		Error:       outcome.Error,
	}
	if outcome.Success {
		expiresAt := outcome.ExpiresAt
		response.ExpiresAt = &expiresAt
	}
	return response
}

// ClaimsResponse represents the claims of a token.
type ClaimsResponse struct {
	Username    string    `json:"username"`
	Authorities []string  `json:"authorities"`
	SessionID   string    `json:"session_id,omitempty"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MapClaimsToResponse converts domain claims to an API response.
func MapClaimsToResponse(claims *authDomain.TokenClaims) ClaimsResponse {
	authorities := claims.Authorities
	if authorities == nil {
		authorities = []string{}
	}
	return ClaimsResponse{
		Username:    claims.Subject,
		Authorities: authorities,
		SessionID:   claims.SessionID,
		IssuedAt:    claims.IssuedAt,
		ExpiresAt:   claims.ExpiresAt,
	}
}

// ValidationResponse represents a token validation outcome. Claims are present for valid and
// expired tokens.
type ValidationResponse struct {
	Valid  bool            `json:"valid"`
	Status string          `json:"status"`
	Reason string          `json:"reason,omitempty"`
	Claims *ClaimsResponse `json:"claims,omitempty"`
}

// MapValidationOutcomeToResponse converts a domain validation outcome to an API response.
func MapValidationOutcomeToResponse(outcome *authDomain.ValidationOutcome) ValidationResponse {
	response := ValidationResponse{
		Valid:  outcome.Valid(),
		Status: string(outcome.Status),
		Reason: outcome.Reason,
	}
	if outcome.Claims != nil {
		claims := MapClaimsToResponse(outcome.Claims)
		response.Claims = &claims
	}
	return response
}

// AuditEventResponse represents an audit event in API responses.
type AuditEventResponse struct {
	ID        string         `json:"id"`
	EventType string         `json:"event_type"`
	Username  string         `json:"username"`
	SessionID string         `json:"session_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Signed    bool           `json:"signed"`
	CreatedAt time.Time      `json:"created_at"`
}

// MapAuditEventToResponse converts a domain audit event to an API response.
func MapAuditEventToResponse(event *authDomain.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:        event.ID.String(),
		EventType: string(event.EventType),
		Username:  event.Username,
		SessionID: event.SessionID,
		Metadata:  event.Metadata,
		Signed:    event.IsSigned(),
		CreatedAt: event.CreatedAt,
	}
}

// ListAuditEventsResponse represents a paginated list of audit events.
type ListAuditEventsResponse struct {
	Data []AuditEventResponse `json:"data"`
}

// MapAuditEventsToListResponse converts a slice of domain audit events to a list API response.
func MapAuditEventsToListResponse(events []*authDomain.AuditEvent) ListAuditEventsResponse {
	data := make([]AuditEventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, MapAuditEventToResponse(event))
	}
	return ListAuditEventsResponse{Data: data}
}
