// Package usecase implements business logic for the card plan catalog.
// The catalog is read-mostly: plans are created and deleted by
// administrators and referenced by many cards.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/cards/internal/plans/domain"
)

// PlanRepository defines the interface for plan persistence operations.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.CardPlan) error
	GetByID(ctx context.Context, planID int64) (*domain.CardPlan, error)
	List(ctx context.Context, offset, limit int) ([]*domain.CardPlan, error)
	Delete(ctx context.Context, planID int64) error
}

// CreatePlanInput carries the fields for a new catalog entry.
type CreatePlanInput struct {
	Name        string
	LimitAmount float64
	Description string
}

// PlanUseCase defines the interface for plan catalog business logic.
type PlanUseCase interface {
	Create(ctx context.Context, input CreatePlanInput) (*domain.CardPlan, error)
	Get(ctx context.Context, planID int64) (*domain.CardPlan, error)
	List(ctx context.Context, offset, limit int) ([]*domain.CardPlan, error)
	Delete(ctx context.Context, planID int64) error
}

// planUseCase implements the PlanUseCase interface.
type planUseCase struct {
	planRepo PlanRepository
}

// NewPlanUseCase creates a new plan use case instance.
func NewPlanUseCase(planRepo PlanRepository) PlanUseCase {
	return &planUseCase{planRepo: planRepo}
}

// Create validates and persists a new plan.
func (p *planUseCase) Create(ctx context.Context, input CreatePlanInput) (*domain.CardPlan, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrPlanNameRequired
	}
	if input.LimitAmount <= 0 {
		return nil, domain.ErrPlanLimitInvalid
	}

	plan := &domain.CardPlan{
		Name:        strings.TrimSpace(input.Name),
		LimitAmount: input.LimitAmount,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Get retrieves a plan by id.
func (p *planUseCase) Get(ctx context.Context, planID int64) (*domain.CardPlan, error) {
	return p.planRepo.GetByID(ctx, planID)
}

// List retrieves plans ordered by id with pagination.
func (p *planUseCase) List(ctx context.Context, offset, limit int) ([]*domain.CardPlan, error) {
	return p.planRepo.List(ctx, offset, limit)
}

// Delete removes a plan from the catalog. Cards already referencing
// the plan keep their assignment.
func (p *planUseCase) Delete(ctx context.Context, planID int64) error {
	return p.planRepo.Delete(ctx, planID)
}
