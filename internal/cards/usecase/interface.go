// Package usecase defines the interfaces and implementations for card
// management use cases. Use cases orchestrate repositories, the
// sensitive data generator, and the plan catalog to implement card
// issuance, lifecycle transitions, verification, and listing.
package usecase

import (
	"context"
	"time"

	cardsDomain "github.com/allisson/cards/internal/cards/domain"
	eventsDomain "github.com/allisson/cards/internal/events/domain"
	plansDomain "github.com/allisson/cards/internal/plans/domain"
)

// ListFilters narrows card listings. Zero values mean "no filter".
// String filters are matched case-insensitively against canonical
// values.
type ListFilters struct {
	Status    string
	Type      string
	Network   string
	UserID    *int64
	AccountID *int64
}

// CardRepository defines the interface for card persistence operations.
// Create persists the card together with its sensitive data and
// assigns the card ID; Update rewrites status and sensitive data in
// place.
type CardRepository interface {
	Create(ctx context.Context, card *cardsDomain.Card) error
	Update(ctx context.Context, card *cardsDomain.Card) error
	GetByID(ctx context.Context, cardID int64) (*cardsDomain.Card, error)
	GetByCardNumber(ctx context.Context, cardNumber string) (*cardsDomain.Card, error)
	GetByCardNumberAndAccountID(ctx context.Context, cardNumber string, accountID int64) (*cardsDomain.Card, error)
	List(ctx context.Context, filters ListFilters, offset, limit int) ([]*cardsDomain.Card, error)
	ExistsDuplicate(ctx context.Context, userID, accountID int64, cardType cardsDomain.CardType, network cardsDomain.CardNetwork) (bool, error)
	ExistsByPlanAndUser(ctx context.Context, planID, userID int64) (bool, error)
	CountDistinctUsersByPlan(ctx context.Context, planID int64) (int64, error)
}

// PlanCatalog defines the read interface the card use cases need from
// the plan catalog.
type PlanCatalog interface {
	Get(ctx context.Context, planID int64) (*plansDomain.CardPlan, error)
}

// EventRepository defines the interface for card event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *eventsDomain.CardEvent) error
}

// IssueCardRequest carries the caller-supplied fields for card
// issuance. UserID and AccountCurrency come from the resolved caller
// identity, not the request body.
type IssueCardRequest struct {
	UserID          int64
	AccountID       int64
	PIN             string
	Type            string
	Network         string
	PlanID          *int64
	Currency        string
	AccountCurrency string
}

// CardSummary is the issuance result. It never carries the raw PIN,
// CVV, or full card number.
type CardSummary struct {
	CardID           int64
	MaskedCardNumber string
	CardExpiry       string
	CardStatus       cardsDomain.CardStatus
	Type             cardsDomain.CardType
	CreatedAt        time.Time
}

// UpdateCardRequest carries the user-settable card fields. At least
// one field must be provided.
type UpdateCardRequest struct {
	PIN    string
	Status string
}

// CardListEntry is a listing projection. CardNumber is masked unless
// the caller owns the entry and is not an administrator.
type CardListEntry struct {
	CardID     int64
	UserID     int64
	AccountID  int64
	CardNumber string
	CardExpiry string
	Type       cardsDomain.CardType
	Network    cardsDomain.CardNetwork
	CardStatus cardsDomain.CardStatus
	CreatedAt  time.Time
}

// SensitiveDetails is the full sensitive payload returned only to the
// card's owner.
type SensitiveDetails struct {
	CardID     int64
	UserID     int64
	AccountID  int64
	CardNumber string
	CardExpiry string
	CardPIN    string
	CardCVV    string
	Type       cardsDomain.CardType
	CardStatus cardsDomain.CardStatus
}

// CardUseCase defines the interface for card lifecycle business logic.
type CardUseCase interface {
	Issue(ctx context.Context, req *IssueCardRequest) (*CardSummary, error)
	Block(ctx context.Context, cardID int64) (*cardsDomain.Card, error)
	Unblock(ctx context.Context, cardID int64) (*cardsDomain.Card, error)
	Update(ctx context.Context, cardID int64, req *UpdateCardRequest) error
	Deliver(ctx context.Context, cardID int64, targetStatus string, isAdmin bool) error
	ActivateByUser(ctx context.Context, cardNumber, cvv string, userID int64) error
	List(ctx context.Context, filters ListFilters, isAdmin bool, callerUserID int64, offset, limit int) ([]*CardListEntry, error)
	GetSensitiveData(ctx context.Context, cardID, callerUserID int64) (*SensitiveDetails, error)
}

// ExternalVerification is the outcome of an external verification
// check. CardLastFour is set only on success.
type ExternalVerification struct {
	Verified     bool
	Message      string
	UserID       int64
	CardLastFour string
}

// InternalVerificationRequest carries the fields of an internal
// verification challenge. Exactly one of PIN and CVV must be supplied.
type InternalVerificationRequest struct {
	CardNumber string
	AccountID  int64
	PIN        string
	CVV        string
	Amount     *float64
}

// VerificationUseCase defines the interface for card verification
// checks. Both checks collapse every failure into a negative result;
// no error detail reaches the caller.
type VerificationUseCase interface {
	VerifyExternal(ctx context.Context, userID int64, cardNumber string) *ExternalVerification
	VerifyInternal(ctx context.Context, req *InternalVerificationRequest) bool
}
