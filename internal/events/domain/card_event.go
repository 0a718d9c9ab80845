// Package domain defines the card lifecycle event entities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Card event types recorded for lifecycle transitions.
const (
	EventCardIssued    = "card.issued"
	EventCardDelivered = "card.delivered"
	EventCardActivated = "card.activated"
	EventCardBlocked   = "card.blocked"
	EventCardUnblocked = "card.unblocked"
	EventCardUpdated   = "card.updated"
)

// CardEvent is an append-only record of a card lifecycle transition.
// Events are best-effort: a failed insert never aborts the transition
// that produced it.
type CardEvent struct {
	ID        uuid.UUID
	CardID    int64
	EventType string
	Payload   string
	CreatedAt time.Time
}
