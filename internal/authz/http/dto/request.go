// Package dto provides data transfer objects for the authorization endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/portfolio-auth/internal/validation"
)

// DecisionRequest asks whether a user may perform action on resource. An empty username
// means the caller itself.
type DecisionRequest struct {
	Username string `json:"username"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Validate checks if the decision request is valid.
func (r *DecisionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Length(0, 255)),
		validation.Field(&r.Resource,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Action,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
	)
}
