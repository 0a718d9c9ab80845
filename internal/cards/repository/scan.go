package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/allisson/cards/internal/cards/domain"
)

// rowScanner abstracts sql.Row and sql.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard reads a card row joined with its (possibly absent)
// sensitive data columns.
func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		card       domain.Card
		cardType   string
		network    string
		status     string
		planID     sql.NullInt64
		createdAt  time.Time
		cardNumber sql.NullString
		cvv        sql.NullString
		pin        sql.NullString
		expiry     sql.NullString
	)

	err := row.Scan(
		&card.ID, &card.UserID, &card.AccountID, &cardType, &network, &status, &planID, &createdAt,
		&cardNumber, &cvv, &pin, &expiry,
	)
	if err != nil {
		return nil, err
	}

	card.Type = domain.CardType(cardType)
	card.Network = domain.CardNetwork(network)
	card.Status = domain.CardStatus(status)
	card.CreatedAt = createdAt
	if planID.Valid {
		card.PlanID = &planID.Int64
	}
	if cardNumber.Valid {
		card.Sensitive = &domain.SensitiveData{
			CardNumber: cardNumber.String,
			CVV:        cvv.String,
			PIN:        pin.String,
			Expiry:     expiry.String,
		}
	}
	return &card, nil
}

// isUniqueViolation checks if the error is a unique constraint
// violation in either PostgreSQL or MySQL wording.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint"
	// MySQL: "Error 1062 ... Duplicate entry"
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate entry")
}
