package domain

import (
	"github.com/allisson/cards/internal/errors"
)

// Card-specific error definitions. Validation failures carry the exact
// message shown to the caller; lookup and ownership failures map to the
// shared not-found and forbidden sentinels.
var (
	// ErrCardNotFound indicates the requested card does not exist.
	ErrCardNotFound = errors.Wrap(errors.ErrNotFound, "card not found")

	// ErrDuplicateCard indicates a card with the same ownership and
	// classification tuple already exists.
	ErrDuplicateCard = errors.Wrap(errors.ErrInvalidInput,
		"Duplicate card: A card with this user, account, type, and network already exists.")

	// ErrCurrencyMismatch indicates the requested currency differs from
	// the account's resolved currency.
	ErrCurrencyMismatch = errors.Wrap(errors.ErrInvalidInput,
		"Currency mismatch: Card currency does not match account currency")

	// ErrSensitiveDataMissing indicates a persisted card has no
	// sensitive data record, which is a data-integrity failure.
	ErrSensitiveDataMissing = errors.Wrap(errors.ErrInternal, "Card sensitive data not found")

	// ErrNotCardOwner indicates the caller does not own the card.
	ErrNotCardOwner = errors.Wrap(errors.ErrForbidden,
		"Access denied. Card does not belong to user")

	// ErrDeliverRequiresAdmin indicates a non-administrative caller
	// attempted a delivery transition.
	ErrDeliverRequiresAdmin = errors.Wrap(errors.ErrForbidden,
		"Access denied. Only ADMIN can deliver cards")

	// ErrDeliverTargetStatus indicates the requested target status of a
	// delivery was not DELIVERED.
	ErrDeliverTargetStatus = errors.Wrap(errors.ErrInvalidInput,
		"cardStatus must be exactly 'DELIVERED'")

	// ErrDeliverNotPending indicates a delivery was attempted on a card
	// that is not awaiting delivery.
	ErrDeliverNotPending = errors.Wrap(errors.ErrInvalidInput,
		"Card status must be PENDING to deliver")

	// ErrActivationLookup collapses not-found and not-owned into a
	// single message so activation cannot be used as an ownership oracle.
	ErrActivationLookup = errors.Wrap(errors.ErrInvalidInput,
		"Card not found or does not belong to user")

	// ErrActivationNotDelivered indicates activation was attempted on a
	// card that has not been delivered.
	ErrActivationNotDelivered = errors.Wrap(errors.ErrInvalidInput,
		"Card must be DELIVERED to activate")

	// ErrActivationBadCVV indicates the supplied CVV did not match.
	ErrActivationBadCVV = errors.Wrap(errors.ErrInvalidInput, "Invalid CVV")

	// ErrUpdateNoFields indicates an update request carried neither a
	// new PIN nor a new status.
	ErrUpdateNoFields = errors.Wrap(errors.ErrInvalidInput,
		"At least one field (cardpin or cardstatus) must be provided for update")

	// ErrUpdateInvalidStatus indicates an update requested a status
	// outside the user-settable set.
	ErrUpdateInvalidStatus = errors.Wrap(errors.ErrInvalidInput,
		"Invalid status. Allowed values: FREEZE, ACTIVE.")

	// ErrInvalidPIN indicates the PIN is not exactly four digits.
	ErrInvalidPIN = errors.Wrap(errors.ErrInvalidInput,
		"Invalid PIN. It must be exactly 4 digits.")

	// ErrRequestRequired indicates a nil issuance request.
	ErrRequestRequired = errors.Wrap(errors.ErrInvalidInput, "Request cannot be null")

	// ErrUserIDMissing indicates issuance without a resolved caller id.
	ErrUserIDMissing = errors.Wrap(errors.ErrInvalidInput,
		"userId is missing - this should be set from the JWT token")

	// ErrAccountIDRequired indicates issuance without an account id.
	ErrAccountIDRequired = errors.Wrap(errors.ErrInvalidInput, "accountId is required")

	// ErrPINRequired indicates issuance without a PIN.
	ErrPINRequired = errors.Wrap(errors.ErrInvalidInput, "cardPin is required")

	// ErrTypeRequired indicates issuance without a card type.
	ErrTypeRequired = errors.Wrap(errors.ErrInvalidInput, "Card type is required")

	// ErrTypeInvalid indicates an unknown card type.
	ErrTypeInvalid = errors.Wrap(errors.ErrInvalidInput,
		"Invalid card type. Only 'Physical' and 'Virtual' are allowed.")

	// ErrNetworkRequired indicates issuance without a network.
	ErrNetworkRequired = errors.Wrap(errors.ErrInvalidInput, "Network is required")

	// ErrNetworkInvalid indicates an unknown card network.
	ErrNetworkInvalid = errors.Wrap(errors.ErrInvalidInput,
		"Invalid network. Only 'Visa', 'MasterCard', or 'Other' are allowed.")

	// ErrActivateFieldsRequired indicates user activation without the
	// required card number or CVV.
	ErrActivateFieldsRequired = errors.Wrap(errors.ErrInvalidInput,
		"cardNumber and cardCvv are required")

	// ErrActivateUnauthorized indicates user activation without a
	// resolved caller id.
	ErrActivateUnauthorized = errors.Wrap(errors.ErrUnauthorized,
		"Unauthorized: user not found in token")
)
