// Package domain defines the card plan catalog entities.
package domain

import (
	"time"

	"github.com/allisson/cards/internal/errors"
)

// CardPlan is a shared catalog entry referenced by many cards. The
// limit amount caps transaction values during internal verification.
type CardPlan struct {
	ID          int64
	Name        string
	LimitAmount float64
	Description string
	CreatedAt   time.Time
}

// Plan-specific error definitions.
var (
	// ErrPlanNotFound indicates the requested plan does not exist.
	ErrPlanNotFound = errors.Wrap(errors.ErrNotFound, "card plan not found")

	// ErrPlanNameRequired indicates the plan name field is required.
	ErrPlanNameRequired = errors.Wrap(errors.ErrInvalidInput, "name is required")

	// ErrPlanLimitInvalid indicates the plan limit amount is not positive.
	ErrPlanLimitInvalid = errors.Wrap(errors.ErrInvalidInput, "limitAmount must be greater than zero")
)
