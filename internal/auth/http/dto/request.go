// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/portfolio-auth/internal/auth/domain"
	customValidation "github.com/allisson/portfolio-auth/internal/validation"
)

// LoginRequest contains the credentials submitted to the mock credential login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // request field
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 128),
		),
	)
}

// ToCredentials converts the request into domain credentials.
func (r *LoginRequest) ToCredentials() *authDomain.Credentials {
	return &authDomain.Credentials{Username: r.Username, Password: r.Password}
}

// FederatedLoginRequest is an identity assertion relayed by a trusted upstream authenticator.
type FederatedLoginRequest struct {
	Authenticated bool     `json:"authenticated"`
	Principal     string   `json:"principal"`
	Authorities   []string `json:"authorities"`
	SessionID     string   `json:"session_id"`
}

// Validate checks if the federated login request is valid. A principal is only required
// for a successful assertion.
func (r *FederatedLoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Principal,
			validation.When(r.Authenticated, validation.Required, customValidation.NotBlank),
			validation.Length(0, 255),
		),
		validation.Field(&r.Authorities,
			validation.Each(validation.Required, customValidation.NotBlank),
		),
		validation.Field(&r.SessionID, validation.Length(0, 255)),
	)
}

// ToIdentity converts the request into a domain identity.
func (r *FederatedLoginRequest) ToIdentity() *authDomain.ExternalIdentity {
	return &authDomain.ExternalIdentity{
		Authenticated: r.Authenticated,
		Principal:     r.Principal,
		Authorities:   append([]string{}, r.Authorities...),
		SessionID:     r.SessionID,
	}
}

// TokenRequest carries a token to validate or refresh.
type TokenRequest struct {
	Token string `json:"token"`
}

// Validate checks that a token was provided.
func (r *TokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank),
	)
}
