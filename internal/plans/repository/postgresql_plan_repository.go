// Package repository provides data persistence implementations for card plans.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/cards/internal/database"
	"github.com/allisson/cards/internal/plans/domain"

	apperrors "github.com/allisson/cards/internal/errors"
)

// PostgreSQLPlanRepository handles plan persistence for PostgreSQL
type PostgreSQLPlanRepository struct {
	db *sql.DB
}

// NewPostgreSQLPlanRepository creates a new PostgreSQLPlanRepository
func NewPostgreSQLPlanRepository(db *sql.DB) *PostgreSQLPlanRepository {
	return &PostgreSQLPlanRepository{
		db: db,
	}
}

// Create inserts a new plan and assigns the generated id.
func (r *PostgreSQLPlanRepository) Create(ctx context.Context, plan *domain.CardPlan) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO card_plans (name, limit_amount, description, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`

	err := querier.QueryRowContext(ctx, query,
		plan.Name, plan.LimitAmount, plan.Description, plan.CreatedAt,
	).Scan(&plan.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create card plan")
	}
	return nil
}

// GetByID retrieves a plan by id.
func (r *PostgreSQLPlanRepository) GetByID(ctx context.Context, planID int64) (*domain.CardPlan, error) {
	var plan domain.CardPlan
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, limit_amount, description, created_at
			  FROM card_plans WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, planID).Scan(
		&plan.ID, &plan.Name, &plan.LimitAmount, &plan.Description, &plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get card plan by id")
	}
	return &plan, nil
}

// List retrieves plans ordered by id with pagination.
func (r *PostgreSQLPlanRepository) List(ctx context.Context, offset, limit int) ([]*domain.CardPlan, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, limit_amount, description, created_at
			  FROM card_plans ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list card plans")
	}
	defer func() { _ = rows.Close() }()

	var plans []*domain.CardPlan
	for rows.Next() {
		var plan domain.CardPlan
		err := rows.Scan(&plan.ID, &plan.Name, &plan.LimitAmount, &plan.Description, &plan.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan card plan")
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate card plans")
	}
	return plans, nil
}

// Delete removes a plan by id.
func (r *PostgreSQLPlanRepository) Delete(ctx context.Context, planID int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM card_plans WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, planID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete card plan")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted rows")
	}
	if rows == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
