package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cards/internal/events/domain"
)

func TestPostgreSQLEventRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	repo := NewPostgreSQLEventRepository(db)
	event := &domain.CardEvent{
		ID:        uuid.Must(uuid.NewV7()),
		CardID:    42,
		EventType: domain.EventCardIssued,
		Payload:   `{"cardId":42}`,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`(?s)INSERT INTO card_events .+ VALUES \(\$1, \$2, \$3, \$4, \$5\)`).
		WithArgs(event.ID, event.CardID, event.EventType, event.Payload, event.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), event)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLEventRepository_ListByCardID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	repo := NewPostgreSQLEventRepository(db)
	firstID := uuid.Must(uuid.NewV7())
	secondID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "card_id", "event_type", "payload", "created_at"}).
		AddRow(firstID, int64(42), domain.EventCardBlocked, `{"cardId":42}`, now).
		AddRow(secondID, int64(42), domain.EventCardIssued, `{"cardId":42}`, now.Add(-time.Hour))

	mock.ExpectQuery(`(?s)SELECT .+ FROM card_events .*WHERE card_id = \$1 .+ LIMIT \$2`).
		WithArgs(int64(42), 10).
		WillReturnRows(rows)

	events, err := repo.ListByCardID(context.Background(), 42, 10)

	assert.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, firstID, events[0].ID)
	assert.Equal(t, domain.EventCardBlocked, events[0].EventType)
	assert.Equal(t, secondID, events[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
