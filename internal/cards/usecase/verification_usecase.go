package usecase

import (
	"context"
	"log/slog"
	"strings"

	cardsDomain "github.com/allisson/cards/internal/cards/domain"
	apperrors "github.com/allisson/cards/internal/errors"
)

// External verification response messages.
const (
	msgCardNumberRequired = "Card number is required"
	msgVerified           = "Card verified successfully"
	msgNotVerified        = "Card verification failed. Card not found, inactive, or doesn't belong to user"
	msgSystemError        = "Verification failed due to system error"
)

// verificationUseCase implements the VerificationUseCase interface.
// Every failure collapses into a negative result: callers never learn
// which check failed. The discarded reasons are logged at debug level
// for operators.
type verificationUseCase struct {
	cardRepo    CardRepository
	planCatalog PlanCatalog
}

// NewVerificationUseCase creates a new verification use case instance.
func NewVerificationUseCase(cardRepo CardRepository, planCatalog PlanCatalog) VerificationUseCase {
	return &verificationUseCase{
		cardRepo:    cardRepo,
		planCatalog: planCatalog,
	}
}

// VerifyExternal checks that a card exists, belongs to the given user,
// and is in an active-enough status. On success the response carries
// only the last four digits of the card number.
func (v *verificationUseCase) VerifyExternal(ctx context.Context, userID int64, cardNumber string) *ExternalVerification {
	if strings.TrimSpace(cardNumber) == "" {
		return &ExternalVerification{
			Verified: false,
			Message:  msgCardNumberRequired,
			UserID:   userID,
		}
	}

	card, err := v.cardRepo.GetByCardNumber(ctx, cardNumber)
	if err != nil {
		// A missing card is an ordinary negative; anything else is a
		// repository failure the caller should not mistake for one.
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			return v.externalError(ctx, userID, err)
		}
		return v.externalFailure(ctx, userID, "card not found", err)
	}
	if card.UserID != userID {
		return v.externalFailure(ctx, userID, "ownership mismatch", nil)
	}
	if !card.Status.ActiveEnough() {
		return v.externalFailure(ctx, userID, "status not active enough", nil)
	}

	return &ExternalVerification{
		Verified:     true,
		Message:      msgVerified,
		UserID:       userID,
		CardLastFour: cardsDomain.LastFour(cardNumber),
	}
}

func (v *verificationUseCase) externalError(ctx context.Context, userID int64, err error) *ExternalVerification {
	slog.ErrorContext(ctx, "external verification lookup failed",
		"user_id", userID,
		"error", err,
	)
	return &ExternalVerification{
		Verified: false,
		Message:  msgSystemError,
		UserID:   userID,
	}
}

func (v *verificationUseCase) externalFailure(ctx context.Context, userID int64, reason string, err error) *ExternalVerification {
	slog.DebugContext(ctx, "external verification failed",
		"user_id", userID,
		"reason", reason,
		"error", err,
	)
	return &ExternalVerification{
		Verified: false,
		Message:  msgNotVerified,
		UserID:   userID,
	}
}

// VerifyInternal runs the PIN-or-CVV challenge for payment-adjacent
// callers. Exactly one of PIN and CVV must be supplied, the supplied
// value must match, the card must carry a plan, the amount (when
// given) must not exceed the plan limit, and the status must be active
// enough. Every failure returns false with no distinguishing signal.
func (v *verificationUseCase) VerifyInternal(ctx context.Context, req *InternalVerificationRequest) bool {
	if req == nil {
		return false
	}

	card, err := v.cardRepo.GetByCardNumberAndAccountID(ctx, req.CardNumber, req.AccountID)
	if err != nil {
		return v.internalFailure(ctx, "lookup failed", err)
	}

	hasPIN := strings.TrimSpace(req.PIN) != ""
	hasCVV := strings.TrimSpace(req.CVV) != ""
	if hasPIN == hasCVV {
		return v.internalFailure(ctx, "exactly one of pin and cvv must be supplied", nil)
	}

	if card.Sensitive == nil {
		return v.internalFailure(ctx, "sensitive data missing", nil)
	}
	if hasPIN && card.Sensitive.PIN != req.PIN {
		return v.internalFailure(ctx, "pin mismatch", nil)
	}
	if hasCVV && card.Sensitive.CVV != req.CVV {
		return v.internalFailure(ctx, "cvv mismatch", nil)
	}

	if card.PlanID == nil {
		return v.internalFailure(ctx, "card has no plan", nil)
	}
	plan, err := v.planCatalog.Get(ctx, *card.PlanID)
	if err != nil {
		return v.internalFailure(ctx, "plan lookup failed", err)
	}
	if req.Amount != nil && *req.Amount > plan.LimitAmount {
		return v.internalFailure(ctx, "amount exceeds plan limit", nil)
	}

	if !card.Status.ActiveEnough() {
		return v.internalFailure(ctx, "status not active enough", nil)
	}
	return true
}

func (v *verificationUseCase) internalFailure(ctx context.Context, reason string, err error) bool {
	slog.DebugContext(ctx, "internal verification failed",
		"reason", reason,
		"error", err,
	)
	return false
}
