package dto

import "time"

// IssueCardResponse is the issuance result. It carries the masked card
// number only; the full number, CVV, and PIN are fetched through the
// dedicated sensitive data endpoints.
type IssueCardResponse struct {
	CardID           int64     `json:"cardId"`
	MaskedCardNumber string    `json:"maskedCardNumber"`
	CardExpiry       string    `json:"cardExpiry"`
	CardStatus       string    `json:"cardStatus"`
	Type             string    `json:"type"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CardListEntryResponse is a single card in a listing. CardNumber is
// masked unless the caller owns the card and is not an administrator.
type CardListEntryResponse struct {
	CardID     int64     `json:"cardId"`
	UserID     int64     `json:"userId"`
	AccountID  int64     `json:"accountId"`
	CardNumber string    `json:"cardNumber"`
	CardExpiry string    `json:"cardExpiry"`
	Type       string    `json:"type"`
	Network    string    `json:"network"`
	CardStatus string    `json:"cardStatus"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CardListResponse wraps a card listing with its pagination window.
type CardListResponse struct {
	Cards  []CardListEntryResponse `json:"cards"`
	Offset int                     `json:"offset"`
	Limit  int                     `json:"limit"`
}

// SensitiveDataResponse is the full sensitive payload returned only to
// the card's owner.
type SensitiveDataResponse struct {
	CardID     int64  `json:"cardId"`
	UserID     int64  `json:"userId"`
	AccountID  int64  `json:"accountId"`
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardPIN    string `json:"cardPin"`
	CardCVV    string `json:"cardCvv"`
	Type       string `json:"type"`
	CardStatus string `json:"cardStatus"`
}

// CardNumberResponse carries the full card number for the owner.
type CardNumberResponse struct {
	CardNumber string `json:"cardNumber"`
}

// CardCVVResponse carries the card CVV for the owner.
type CardCVVResponse struct {
	CardCVV string `json:"cardCvv"`
}

// StatusChangeResponse reports the outcome of a block or unblock
// transition with the masked card number.
type StatusChangeResponse struct {
	CardID           int64  `json:"cardId"`
	MaskedCardNumber string `json:"maskedCardNumber"`
	CardStatus       string `json:"cardStatus"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ExternalVerifyResponse is the outcome of an external verification
// check. CardLastFour is set only when the card verifies.
type ExternalVerifyResponse struct {
	Verified     bool   `json:"verified"`
	Message      string `json:"message"`
	UserID       int64  `json:"userId"`
	CardLastFour string `json:"cardLastFour,omitempty"`
}

// InternalVerifyResponse is the outcome of an internal verification
// challenge.
type InternalVerifyResponse struct {
	Verified bool `json:"verified"`
}
