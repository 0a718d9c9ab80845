package dto

import (
	"time"

	"github.com/allisson/cards/internal/plans/domain"
)

// PlanResponse is a card plan in API responses.
type PlanResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	LimitAmount float64   `json:"limitAmount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlanListResponse wraps a plan listing with its pagination window.
type PlanListResponse struct {
	Plans  []PlanResponse `json:"plans"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// ToPlanResponse converts a domain CardPlan to a PlanResponse DTO
func ToPlanResponse(plan *domain.CardPlan) PlanResponse {
	return PlanResponse{
		ID:          plan.ID,
		Name:        plan.Name,
		LimitAmount: plan.LimitAmount,
		Description: plan.Description,
		CreatedAt:   plan.CreatedAt,
	}
}

// ToPlanListResponse converts domain CardPlans to a PlanListResponse DTO
func ToPlanListResponse(plans []*domain.CardPlan, offset, limit int) PlanListResponse {
	items := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		items = append(items, ToPlanResponse(plan))
	}
	return PlanListResponse{
		Plans:  items,
		Offset: offset,
		Limit:  limit,
	}
}
