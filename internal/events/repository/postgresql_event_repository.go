// Package repository provides data persistence implementations for card events.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cards/internal/database"
	"github.com/allisson/cards/internal/events/domain"
)

// PostgreSQLEventRepository handles card event persistence for PostgreSQL
type PostgreSQLEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLEventRepository creates a new PostgreSQLEventRepository
func NewPostgreSQLEventRepository(db *sql.DB) *PostgreSQLEventRepository {
	return &PostgreSQLEventRepository{
		db: db,
	}
}

// Create inserts a new card event
func (r *PostgreSQLEventRepository) Create(ctx context.Context, event *domain.CardEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO card_events (id, card_id, event_type, payload, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(ctx, query,
		event.ID, event.CardID, event.EventType, event.Payload, event.CreatedAt)

	return err
}

// ListByCardID retrieves events for a card ordered from newest to oldest.
func (r *PostgreSQLEventRepository) ListByCardID(ctx context.Context, cardID int64, limit int) ([]*domain.CardEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, card_id, event_type, payload, created_at
			  FROM card_events
			  WHERE card_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, cardID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var events []*domain.CardEvent
	for rows.Next() {
		var event domain.CardEvent
		err := rows.Scan(&event.ID, &event.CardID, &event.EventType, &event.Payload, &event.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}
