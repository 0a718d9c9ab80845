// Package domain defines the core card domain entities and types.
// Cards carry ownership, classification, a status lifecycle, and an
// exclusively-owned sensitive data record generated at issuance.
package domain

import (
	"strings"
	"time"
)

// CardType classifies how a card is delivered and used.
type CardType string

const (
	TypePhysical CardType = "PHYSICAL"
	TypeVirtual  CardType = "VIRTUAL"
)

// CardNetwork identifies the payment network a card belongs to.
type CardNetwork string

const (
	NetworkVisa       CardNetwork = "VISA"
	NetworkMastercard CardNetwork = "MASTERCARD"
	NetworkOther      CardNetwork = "OTHER"
)

// CardStatus represents the lifecycle state of a card.
type CardStatus string

const (
	StatusPending   CardStatus = "PENDING"
	StatusDelivered CardStatus = "DELIVERED"
	StatusActive    CardStatus = "ACTIVE"
	StatusBlocked   CardStatus = "BLOCKED"
	StatusFreeze    CardStatus = "FREEZE"
	StatusExpired   CardStatus = "EXPIRED"
	StatusSuspended CardStatus = "SUSPENDED"
)

// ParseCardType canonicalizes a raw type value. Comparison is
// case-insensitive; the stored form is always upper case.
func ParseCardType(raw string) (CardType, bool) {
	switch CardType(strings.ToUpper(strings.TrimSpace(raw))) {
	case TypePhysical:
		return TypePhysical, true
	case TypeVirtual:
		return TypeVirtual, true
	default:
		return "", false
	}
}

// ParseCardNetwork canonicalizes a raw network value.
func ParseCardNetwork(raw string) (CardNetwork, bool) {
	switch CardNetwork(strings.ToUpper(strings.TrimSpace(raw))) {
	case NetworkVisa:
		return NetworkVisa, true
	case NetworkMastercard:
		return NetworkMastercard, true
	case NetworkOther:
		return NetworkOther, true
	default:
		return "", false
	}
}

// ParseCardStatus canonicalizes a raw status value.
func ParseCardStatus(raw string) (CardStatus, bool) {
	switch CardStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending, StatusDelivered, StatusActive, StatusBlocked,
		StatusFreeze, StatusExpired, StatusSuspended:
		return CardStatus(strings.ToUpper(strings.TrimSpace(raw))), true
	default:
		return "", false
	}
}

// String returns the canonical string form of the card type.
func (t CardType) String() string { return string(t) }

// String returns the canonical string form of the card network.
func (n CardNetwork) String() string { return string(n) }

// String returns the canonical string form of the card status.
func (s CardStatus) String() string { return string(s) }

// ActiveEnough reports whether the status permits identity verification.
// DELIVERED, ACTIVE, and FREEZE all count: a frozen card still verifies
// even though a live transaction would be declined elsewhere.
func (s CardStatus) ActiveEnough() bool {
	switch s {
	case StatusBlocked, StatusExpired, StatusSuspended, StatusPending:
		return false
	default:
		return true
	}
}

// Card represents a payment card with ownership, classification,
// lifecycle status, and a reference to its plan.
type Card struct {
	ID        int64
	UserID    int64
	AccountID int64
	Type      CardType
	Network   CardNetwork
	Status    CardStatus
	PlanID    *int64
	Sensitive *SensitiveData
	CreatedAt time.Time
}

// SensitiveData holds the confidential fields exclusively owned by a
// card. The full card number, CVV, and PIN are only ever returned to
// the card's owner.
type SensitiveData struct {
	CardNumber string
	CVV        string
	PIN        string
	Expiry     string
}

// MaskCardNumber renders a card number with only the last four digits
// visible. Numbers shorter than four characters mask to a fixed
// sentinel instead of leaking the whole value.
func MaskCardNumber(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return "**** **** **** " + cardNumber[len(cardNumber)-4:]
}

// LastFour returns the last four digits of a card number, or the empty
// string when the number is too short.
func LastFour(cardNumber string) string {
	if len(cardNumber) < 4 {
		return ""
	}
	return cardNumber[len(cardNumber)-4:]
}
