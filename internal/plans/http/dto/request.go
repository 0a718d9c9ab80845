// Package dto provides data transfer objects for the plan HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cards/internal/validation"
)

// CreatePlanRequest contains the parameters for creating a card plan.
type CreatePlanRequest struct {
	Name        string  `json:"name"`
	LimitAmount float64 `json:"limitAmount"`
	Description string  `json:"description"`
}

// Validate checks if the create plan request is valid.
func (r *CreatePlanRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.LimitAmount,
			validation.Required,
			validation.Min(0.01),
		),
	)
}
