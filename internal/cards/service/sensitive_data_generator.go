package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/allisson/cards/internal/cards/domain"
)

const (
	cardNumberPrefix = "4"
	cardNumberDigits = 15
	cvvMin           = 100
	cvvRange         = 900
	expiryMinYears   = 3
	expiryYearRange  = 4
)

type sensitiveDataGenerator struct {
	random io.Reader
	now    func() time.Time
}

// NewSensitiveDataGenerator creates a generator backed by crypto/rand.
// Each call is independent; generation never needs retries.
func NewSensitiveDataGenerator() SensitiveDataGenerator {
	return &sensitiveDataGenerator{random: rand.Reader, now: time.Now}
}

// NewSensitiveDataGeneratorWithSource creates a generator reading
// randomness from the given source and stamping expiry dates relative
// to the given clock. Used by tests; production code should use
// NewSensitiveDataGenerator.
func NewSensitiveDataGeneratorWithSource(random io.Reader, now func() time.Time) SensitiveDataGenerator {
	return &sensitiveDataGenerator{random: random, now: now}
}

// Generate produces a fresh set of sensitive card fields: a 16-digit
// card number with a fixed leading 4, a CVV in [100,999], and an MM/YY
// expiry 3 to 6 years out. The caller-supplied PIN is stored as given.
func (g *sensitiveDataGenerator) Generate(pin string) (*domain.SensitiveData, error) {
	cardNumber, err := g.generateCardNumber()
	if err != nil {
		return nil, err
	}

	cvv, err := g.randomInt(cvvRange)
	if err != nil {
		return nil, fmt.Errorf("failed to generate cvv: %w", err)
	}

	expiry, err := g.generateExpiry()
	if err != nil {
		return nil, err
	}

	return &domain.SensitiveData{
		CardNumber: cardNumber,
		CVV:        fmt.Sprintf("%03d", cvvMin+cvv),
		PIN:        pin,
		Expiry:     expiry,
	}, nil
}

func (g *sensitiveDataGenerator) generateCardNumber() (string, error) {
	digits := make([]byte, cardNumberDigits)
	for i := range digits {
		n, err := g.randomInt(10)
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		//nolint:gosec // n is bounded [0,9], safe conversion
		digits[i] = byte('0' + n)
	}
	return cardNumberPrefix + string(digits), nil
}

func (g *sensitiveDataGenerator) generateExpiry() (string, error) {
	month, err := g.randomInt(12)
	if err != nil {
		return "", fmt.Errorf("failed to generate expiry month: %w", err)
	}

	years, err := g.randomInt(expiryYearRange)
	if err != nil {
		return "", fmt.Errorf("failed to generate expiry year: %w", err)
	}

	year := g.now().Year() + expiryMinYears + int(years)
	return fmt.Sprintf("%02d/%02d", month+1, year%100), nil
}

func (g *sensitiveDataGenerator) randomInt(max int64) (int64, error) {
	n, err := rand.Int(g.random, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}
