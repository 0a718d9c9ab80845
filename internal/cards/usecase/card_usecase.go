package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	cardsDomain "github.com/allisson/cards/internal/cards/domain"
	"github.com/allisson/cards/internal/cards/service"
	"github.com/allisson/cards/internal/database"
	"github.com/allisson/cards/internal/errors"
	eventsDomain "github.com/allisson/cards/internal/events/domain"
	customValidation "github.com/allisson/cards/internal/validation"
)

// validPIN reports whether pin has the four-digit shape required of
// every stored PIN. The shared validation rule is the single source of
// truth for that shape.
func validPIN(pin string) bool {
	return customValidation.PIN.Validate(pin) == nil
}

// cardUseCase implements the CardUseCase interface for card lifecycle
// management.
type cardUseCase struct {
	txManager     database.TxManager
	cardRepo      CardRepository
	planCatalog   PlanCatalog
	eventRepo     EventRepository
	generator     service.SensitiveDataGenerator
	defaultPlanID int64
	planQuotas    map[int64]int
}

// NewCardUseCase creates a new card use case instance with the
// provided dependencies. planQuotas maps restricted plan ids to the
// maximum number of distinct users that may ever hold them.
func NewCardUseCase(
	txManager database.TxManager,
	cardRepo CardRepository,
	planCatalog PlanCatalog,
	eventRepo EventRepository,
	generator service.SensitiveDataGenerator,
	defaultPlanID int64,
	planQuotas map[int64]int,
) CardUseCase {
	return &cardUseCase{
		txManager:     txManager,
		cardRepo:      cardRepo,
		planCatalog:   planCatalog,
		eventRepo:     eventRepo,
		generator:     generator,
		defaultPlanID: defaultPlanID,
		planQuotas:    planQuotas,
	}
}

// Issue validates an issuance request, generates sensitive data, and
// persists a new card. Physical cards start PENDING and await
// delivery; virtual cards start ACTIVE immediately.
func (c *cardUseCase) Issue(ctx context.Context, req *IssueCardRequest) (*CardSummary, error) {
	cardType, network, err := validateIssueRequest(req)
	if err != nil {
		return nil, err
	}

	if err := c.checkPlanQuota(ctx, req.PlanID, req.UserID); err != nil {
		return nil, err
	}

	if req.Currency != "" && req.AccountCurrency != "" &&
		!strings.EqualFold(req.Currency, req.AccountCurrency) {
		return nil, cardsDomain.ErrCurrencyMismatch
	}

	duplicate, err := c.cardRepo.ExistsDuplicate(ctx, req.UserID, req.AccountID, cardType, network)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, cardsDomain.ErrDuplicateCard
	}

	sensitive, err := c.generator.Generate(req.PIN)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, err.Error())
	}

	status := cardsDomain.StatusActive
	if cardType == cardsDomain.TypePhysical {
		status = cardsDomain.StatusPending
	}

	card := &cardsDomain.Card{
		UserID:    req.UserID,
		AccountID: req.AccountID,
		Type:      cardType,
		Network:   network,
		Status:    status,
		PlanID:    c.resolvePlanID(ctx, req.PlanID),
		Sensitive: sensitive,
		CreatedAt: time.Now().UTC(),
	}

	// The card row and its sensitive data row must land together.
	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.cardRepo.Create(txCtx, card)
	})
	if err != nil {
		return nil, err
	}

	c.recordEvent(ctx, card.ID, eventsDomain.EventCardIssued, map[string]any{
		"type":    card.Type.String(),
		"network": card.Network.String(),
		"status":  card.Status.String(),
	})

	return &CardSummary{
		CardID:           card.ID,
		MaskedCardNumber: cardsDomain.MaskCardNumber(sensitive.CardNumber),
		CardExpiry:       sensitive.Expiry,
		CardStatus:       card.Status,
		Type:             card.Type,
		CreatedAt:        card.CreatedAt,
	}, nil
}

// validateIssueRequest checks the issuance request fields in a fixed
// order and returns the canonicalized type and network.
func validateIssueRequest(req *IssueCardRequest) (cardsDomain.CardType, cardsDomain.CardNetwork, error) {
	if req == nil {
		return "", "", cardsDomain.ErrRequestRequired
	}
	if req.UserID == 0 {
		return "", "", cardsDomain.ErrUserIDMissing
	}
	if req.AccountID == 0 {
		return "", "", cardsDomain.ErrAccountIDRequired
	}
	if strings.TrimSpace(req.PIN) == "" {
		return "", "", cardsDomain.ErrPINRequired
	}
	if !validPIN(req.PIN) {
		return "", "", cardsDomain.ErrInvalidPIN
	}
	if strings.TrimSpace(req.Type) == "" {
		return "", "", cardsDomain.ErrTypeRequired
	}
	cardType, ok := cardsDomain.ParseCardType(req.Type)
	if !ok {
		return "", "", cardsDomain.ErrTypeInvalid
	}
	if strings.TrimSpace(req.Network) == "" {
		return "", "", cardsDomain.ErrNetworkRequired
	}
	network, ok := cardsDomain.ParseCardNetwork(req.Network)
	if !ok {
		return "", "", cardsDomain.ErrNetworkInvalid
	}
	return cardType, network, nil
}

// checkPlanQuota enforces restricted plan limits: a quota'd plan may
// only ever be held by a bounded number of distinct users, at most
// once each. The check inspects live records, so a released slot is
// not reusable.
func (c *cardUseCase) checkPlanQuota(ctx context.Context, planID *int64, userID int64) error {
	if planID == nil {
		return nil
	}
	quota, restricted := c.planQuotas[*planID]
	if !restricted {
		return nil
	}

	userCount, err := c.cardRepo.CountDistinctUsersByPlan(ctx, *planID)
	if err != nil {
		return err
	}
	if userCount >= int64(quota) {
		return errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf(
			"Plan %s can only be assigned to %d users", c.planLabel(ctx, *planID), quota))
	}

	held, err := c.cardRepo.ExistsByPlanAndUser(ctx, *planID, userID)
	if err != nil {
		return err
	}
	if held {
		return errors.Wrap(errors.ErrInvalidInput, fmt.Sprintf(
			"Plan %s can only be assigned once per user", c.planLabel(ctx, *planID)))
	}
	return nil
}

// planLabel renders a plan as "id (Name)" for quota messages, falling
// back to the bare id when the catalog lookup fails.
func (c *cardUseCase) planLabel(ctx context.Context, planID int64) string {
	plan, err := c.planCatalog.Get(ctx, planID)
	if err != nil {
		return fmt.Sprintf("%d", planID)
	}
	return fmt.Sprintf("%d (%s)", planID, plan.Name)
}

// resolvePlanID picks the plan for a new card: the explicit plan when
// given and resolvable, otherwise the default plan. Cards end up with
// no plan only when the default itself is missing from the catalog.
func (c *cardUseCase) resolvePlanID(ctx context.Context, requested *int64) *int64 {
	if requested != nil {
		if _, err := c.planCatalog.Get(ctx, *requested); err == nil {
			return requested
		}
	}
	if _, err := c.planCatalog.Get(ctx, c.defaultPlanID); err != nil {
		return nil
	}
	planID := c.defaultPlanID
	return &planID
}

// Block transitions a card to BLOCKED unconditionally. Blocking an
// already-blocked card is not an error.
func (c *cardUseCase) Block(ctx context.Context, cardID int64) (*cardsDomain.Card, error) {
	return c.setStatus(ctx, cardID, cardsDomain.StatusBlocked, eventsDomain.EventCardBlocked)
}

// Unblock transitions a card back to ACTIVE unconditionally.
func (c *cardUseCase) Unblock(ctx context.Context, cardID int64) (*cardsDomain.Card, error) {
	return c.setStatus(ctx, cardID, cardsDomain.StatusActive, eventsDomain.EventCardUnblocked)
}

func (c *cardUseCase) setStatus(
	ctx context.Context,
	cardID int64,
	status cardsDomain.CardStatus,
	eventType string,
) (*cardsDomain.Card, error) {
	card, err := c.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	card.Status = status
	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.cardRepo.Update(txCtx, card)
	})
	if err != nil {
		return nil, err
	}

	c.recordEvent(ctx, card.ID, eventType, map[string]any{"status": status.String()})
	return card, nil
}

// Update applies the user-settable card fields: a new PIN, a new
// status, or both. The only statuses reachable through this operation
// are FREEZE and ACTIVE.
func (c *cardUseCase) Update(ctx context.Context, cardID int64, req *UpdateCardRequest) error {
	if req == nil {
		return cardsDomain.ErrUpdateNoFields
	}

	pin := strings.TrimSpace(req.PIN)
	rawStatus := strings.TrimSpace(req.Status)
	if pin == "" && rawStatus == "" {
		return cardsDomain.ErrUpdateNoFields
	}

	if pin != "" && !validPIN(pin) {
		return cardsDomain.ErrInvalidPIN
	}

	var status cardsDomain.CardStatus
	if rawStatus != "" {
		parsed, ok := cardsDomain.ParseCardStatus(rawStatus)
		if !ok || (parsed != cardsDomain.StatusFreeze && parsed != cardsDomain.StatusActive) {
			return cardsDomain.ErrUpdateInvalidStatus
		}
		status = parsed
	}

	card, err := c.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return err
	}

	if pin != "" {
		if card.Sensitive == nil {
			return cardsDomain.ErrSensitiveDataMissing
		}
		card.Sensitive.PIN = pin
	}
	if status != "" {
		card.Status = status
	}

	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.cardRepo.Update(txCtx, card)
	})
	if err != nil {
		return err
	}

	c.recordEvent(ctx, card.ID, eventsDomain.EventCardUpdated, map[string]any{
		"pinChanged": pin != "",
		"status":     card.Status.String(),
	})
	return nil
}

// Deliver transitions a PENDING card to DELIVERED. Only administrative
// callers may deliver, and the requested target status must be exactly
// DELIVERED.
func (c *cardUseCase) Deliver(ctx context.Context, cardID int64, targetStatus string, isAdmin bool) error {
	if !isAdmin {
		return cardsDomain.ErrDeliverRequiresAdmin
	}
	if !strings.EqualFold(strings.TrimSpace(targetStatus), string(cardsDomain.StatusDelivered)) {
		return cardsDomain.ErrDeliverTargetStatus
	}

	card, err := c.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card.Status != cardsDomain.StatusPending {
		return cardsDomain.ErrDeliverNotPending
	}

	card.Status = cardsDomain.StatusDelivered
	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.cardRepo.Update(txCtx, card)
	})
	if err != nil {
		return err
	}

	c.recordEvent(ctx, card.ID, eventsDomain.EventCardDelivered, nil)
	return nil
}

// ActivateByUser lets a card's owner activate a delivered card by
// presenting its number and CVV. Not-found and not-owned collapse into
// one message so the operation cannot be used as an ownership oracle.
func (c *cardUseCase) ActivateByUser(ctx context.Context, cardNumber, cvv string, userID int64) error {
	if cardNumber == "" || cvv == "" {
		return cardsDomain.ErrActivateFieldsRequired
	}
	if userID == 0 {
		return cardsDomain.ErrActivateUnauthorized
	}

	card, err := c.cardRepo.GetByCardNumber(ctx, cardNumber)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return cardsDomain.ErrActivationLookup
		}
		return err
	}
	if card.UserID != userID {
		return cardsDomain.ErrActivationLookup
	}
	if card.Status != cardsDomain.StatusDelivered {
		return cardsDomain.ErrActivationNotDelivered
	}
	if card.Sensitive == nil || card.Sensitive.CVV != cvv {
		return cardsDomain.ErrActivationBadCVV
	}

	card.Status = cardsDomain.StatusActive
	err = c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.cardRepo.Update(txCtx, card)
	})
	if err != nil {
		return err
	}

	c.recordEvent(ctx, card.ID, eventsDomain.EventCardActivated, nil)
	return nil
}

// List projects stored cards into listing entries. Administrators see
// every card with a masked number; other callers are pinned to their
// own cards and see the full number only on entries they own.
func (c *cardUseCase) List(
	ctx context.Context,
	filters ListFilters,
	isAdmin bool,
	callerUserID int64,
	offset, limit int,
) ([]*CardListEntry, error) {
	if !isAdmin {
		filters.UserID = &callerUserID
	}
	filters = canonicalizeFilters(filters)

	cards, err := c.cardRepo.List(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*CardListEntry, 0, len(cards))
	for _, card := range cards {
		entries = append(entries, projectListEntry(card, isAdmin, callerUserID))
	}
	return entries, nil
}

// canonicalizeFilters upper-cases the enum filters so lookups match
// the stored canonical values.
func canonicalizeFilters(filters ListFilters) ListFilters {
	filters.Status = strings.ToUpper(strings.TrimSpace(filters.Status))
	filters.Type = strings.ToUpper(strings.TrimSpace(filters.Type))
	filters.Network = strings.ToUpper(strings.TrimSpace(filters.Network))
	return filters
}

// projectListEntry builds a listing entry with visibility rules
// applied: admins always get a masked number, owners get the full one.
func projectListEntry(card *cardsDomain.Card, isAdmin bool, callerUserID int64) *CardListEntry {
	entry := &CardListEntry{
		CardID:     card.ID,
		UserID:     card.UserID,
		AccountID:  card.AccountID,
		CardNumber: "****",
		Type:       card.Type,
		Network:    card.Network,
		CardStatus: card.Status,
		CreatedAt:  card.CreatedAt,
	}
	if card.Sensitive != nil {
		entry.CardExpiry = card.Sensitive.Expiry
		if !isAdmin && card.UserID == callerUserID {
			entry.CardNumber = card.Sensitive.CardNumber
		} else {
			entry.CardNumber = cardsDomain.MaskCardNumber(card.Sensitive.CardNumber)
		}
	}
	return entry
}

// GetSensitiveData returns the full sensitive payload of a card, but
// only to its owner.
func (c *cardUseCase) GetSensitiveData(ctx context.Context, cardID, callerUserID int64) (*SensitiveDetails, error) {
	card, err := c.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != callerUserID {
		return nil, cardsDomain.ErrNotCardOwner
	}
	if card.Sensitive == nil {
		return nil, cardsDomain.ErrSensitiveDataMissing
	}

	return &SensitiveDetails{
		CardID:     card.ID,
		UserID:     card.UserID,
		AccountID:  card.AccountID,
		CardNumber: card.Sensitive.CardNumber,
		CardExpiry: card.Sensitive.Expiry,
		CardPIN:    card.Sensitive.PIN,
		CardCVV:    card.Sensitive.CVV,
		Type:       card.Type,
		CardStatus: card.Status,
	}, nil
}

// recordEvent appends a lifecycle event. Event persistence is
// best-effort: failures are logged and never abort the transition.
func (c *cardUseCase) recordEvent(ctx context.Context, cardID int64, eventType string, payload map[string]any) {
	body := "{}"
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err == nil {
			body = string(encoded)
		}
	}

	event := &eventsDomain.CardEvent{
		ID:        uuid.Must(uuid.NewV7()),
		CardID:    cardID,
		EventType: eventType,
		Payload:   body,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.eventRepo.Create(ctx, event); err != nil {
		slog.Warn("failed to record card event",
			"card_id", cardID,
			"event_type", eventType,
			"error", err,
		)
	}
}
