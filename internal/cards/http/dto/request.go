// Package dto provides data transfer objects for card HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cards/internal/validation"
)

// IssueCardRequest contains the caller-supplied parameters for card issuance.
// UserID, AccountID, and the account currency come from the resolved token
// identity, never from the body. Field-level checks are deliberately left to
// the use case so callers get a single, ordered validation message.
type IssueCardRequest struct {
	PIN      string `json:"pin"`
	Type     string `json:"type"`
	Network  string `json:"network"`
	PlanID   *int64 `json:"planId"`
	Currency string `json:"currency"`
}

// UpdateCardRequest contains the user-settable card fields. At least one of
// pin and status must be provided; the use case enforces that.
type UpdateCardRequest struct {
	PIN    string `json:"pin"`
	Status string `json:"status"`
}

// DeliverCardRequest carries the target status for a delivery transition.
type DeliverCardRequest struct {
	CardStatus string `json:"cardStatus"`
}

// Validate checks that the requested target status is DELIVERED. The use
// case re-checks this after the admin gate; validating here keeps garbage
// bodies out before any repository work.
func (r *DeliverCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardStatus,
			customValidation.OneOfFold("cardStatus must be exactly 'DELIVERED'", "DELIVERED"),
		),
	)
}

// ActivateCardRequest contains the card credentials for user self-activation.
type ActivateCardRequest struct {
	CardNumber string `json:"cardNumber"`
	CardCVV    string `json:"cardCvv"`
}

// Validate checks the structural shape of the credentials. A number or CVV
// of the wrong shape can never match a card, so rejecting it up front
// leaks nothing about card existence.
func (r *ActivateCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardNumber,
			validation.Required,
			customValidation.CardNumber,
		),
		validation.Field(&r.CardCVV,
			validation.Required,
			customValidation.CVV,
		),
	)
}

// InternalVerifyRequest contains the parameters of an internal verification
// challenge. Exactly one of pin and cvv must be supplied.
type InternalVerifyRequest struct {
	CardNumber string   `json:"cardNumber"`
	AccountID  int64    `json:"accountId"`
	PIN        string   `json:"pin"`
	CVV        string   `json:"cvv"`
	Amount     *float64 `json:"amount"`
}

// Validate checks the structural shape of the internal verification request.
// Semantic checks (card lookup, credential match, limits) stay in the use
// case, which collapses them into a negative result.
func (r *InternalVerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardNumber,
			validation.Required,
			customValidation.CardNumber,
		),
		validation.Field(&r.AccountID,
			validation.Required,
		),
	)
}
