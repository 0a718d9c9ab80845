// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/cards/internal/errors"
)

var (
	// pinRegex matches exactly 4 numeric digits.
	pinRegex = regexp.MustCompile(`^\d{4}$`)
	// cardNumberRegex matches exactly 16 numeric digits.
	cardNumberRegex = regexp.MustCompile(`^\d{16}$`)
	// cvvRegex matches exactly 3 numeric digits.
	cvvRegex = regexp.MustCompile(`^\d{3}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string contains non-whitespace characters.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank", "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "cannot be blank")
	}
	return nil
})

// PIN validates that a string is exactly 4 numeric digits.
var PIN = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_pin", "pin must be a string")
	}
	if !pinRegex.MatchString(s) {
		return validation.NewError("validation_pin", "Invalid PIN. It must be exactly 4 digits.")
	}
	return nil
})

// CardNumber validates that a string is exactly 16 numeric digits.
var CardNumber = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_card_number", "card number must be a string")
	}
	if !cardNumberRegex.MatchString(s) {
		return validation.NewError("validation_card_number", "card number must be exactly 16 digits")
	}
	return nil
})

// CVV validates that a string is exactly 3 numeric digits.
var CVV = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_cvv", "cvv must be a string")
	}
	if !cvvRegex.MatchString(s) {
		return validation.NewError("validation_cvv", "cvv must be exactly 3 digits")
	}
	return nil
})

// OneOfFold returns a rule that validates a string matches one of the allowed
// values case-insensitively. Used for card type, network, and status inputs
// that are canonicalized to upper case before storage.
func OneOfFold(message string, allowed ...string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_one_of", "must be a string")
		}
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimSpace(s), a) {
				return nil
			}
		}
		return validation.NewError("validation_one_of", message)
	})
}
