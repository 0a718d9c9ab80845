// Package service provides generation of card sensitive data.
// Card numbers, CVVs, and expiry dates are produced from a
// cryptographically secure random source.
package service

import (
	"github.com/allisson/cards/internal/cards/domain"
)

// SensitiveDataGenerator defines the interface for producing the
// sensitive fields of a new card. The PIN must already be validated by
// the caller; the generator stores it verbatim.
type SensitiveDataGenerator interface {
	Generate(pin string) (*domain.SensitiveData, error)
}
