package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/cards/internal/database"
	"github.com/allisson/cards/internal/events/domain"
)

// MySQLEventRepository handles card event persistence for MySQL
type MySQLEventRepository struct {
	db *sql.DB
}

// NewMySQLEventRepository creates a new MySQLEventRepository
func NewMySQLEventRepository(db *sql.DB) *MySQLEventRepository {
	return &MySQLEventRepository{
		db: db,
	}
}

// Create inserts a new card event
func (r *MySQLEventRepository) Create(ctx context.Context, event *domain.CardEvent) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO card_events (id, card_id, event_type, payload, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	// Convert UUID to bytes for MySQL BINARY(16)
	idBytes, err := event.ID.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query,
		idBytes, event.CardID, event.EventType, event.Payload, event.CreatedAt)

	return err
}

// ListByCardID retrieves events for a card ordered from newest to oldest.
func (r *MySQLEventRepository) ListByCardID(ctx context.Context, cardID int64, limit int) ([]*domain.CardEvent, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, card_id, event_type, payload, created_at
			  FROM card_events
			  WHERE card_id = ?
			  ORDER BY created_at DESC
			  LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, cardID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var events []*domain.CardEvent
	for rows.Next() {
		var (
			event   domain.CardEvent
			idBytes []byte
		)
		err := rows.Scan(&idBytes, &event.CardID, &event.EventType, &event.Payload, &event.CreatedAt)
		if err != nil {
			return nil, err
		}
		event.ID, err = uuid.FromBytes(idBytes)
		if err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}
