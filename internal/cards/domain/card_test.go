package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCardType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CardType
		ok       bool
	}{
		{
			name:     "Canonical_Physical",
			input:    "PHYSICAL",
			expected: TypePhysical,
			ok:       true,
		},
		{
			name:     "MixedCase_Virtual",
			input:    "Virtual",
			expected: TypeVirtual,
			ok:       true,
		},
		{
			name:     "SurroundingWhitespace",
			input:    "  physical  ",
			expected: TypePhysical,
			ok:       true,
		},
		{
			name:  "Invalid_Unknown",
			input: "PLASTIC",
			ok:    false,
		},
		{
			name:  "Invalid_Empty",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCardType(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseCardNetwork(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CardNetwork
		ok       bool
	}{
		{
			name:     "MixedCase_MasterCard",
			input:    "MasterCard",
			expected: NetworkMastercard,
			ok:       true,
		},
		{
			name:     "LowerCase_Visa",
			input:    "visa",
			expected: NetworkVisa,
			ok:       true,
		},
		{
			name:     "Other",
			input:    "other",
			expected: NetworkOther,
			ok:       true,
		},
		{
			name:  "Invalid_Amex",
			input: "AMEX",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCardNetwork(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseCardStatus(t *testing.T) {
	got, ok := ParseCardStatus("freeze")
	assert.True(t, ok)
	assert.Equal(t, StatusFreeze, got)

	_, ok = ParseCardStatus("MELTED")
	assert.False(t, ok)
}

func TestCardStatus_ActiveEnough(t *testing.T) {
	tests := []struct {
		status   CardStatus
		expected bool
	}{
		{StatusActive, true},
		{StatusDelivered, true},
		{StatusFreeze, true},
		{StatusPending, false},
		{StatusBlocked, false},
		{StatusExpired, false},
		{StatusSuspended, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.ActiveEnough())
		})
	}
}

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "FullNumber",
			input:    "4123456789012345",
			expected: "**** **** **** 2345",
		},
		{
			name:     "ExactlyFourDigits",
			input:    "1234",
			expected: "**** **** **** 1234",
		},
		{
			name:     "ShorterThanFour",
			input:    "123",
			expected: "****",
		},
		{
			name:     "Empty",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskCardNumber(tt.input))
		})
	}
}

func TestLastFour(t *testing.T) {
	assert.Equal(t, "2345", LastFour("4123456789012345"))
	assert.Equal(t, "", LastFour("12"))
}
