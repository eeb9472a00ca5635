package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidExpiry(t *testing.T) {
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  bool
	}{
		{"10/26", true},
		{"11/26", true},
		{"01/27", true},
		{" 12/99 ", true},
		{"09/26", false},
		{"12/25", false},
		{"13/27", false},
		{"00/27", false},
		{"1/27", false},
		{"01/2027", false},
		{"0127", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, validExpiry(tt.input, now))
		})
	}
}

func TestNormalizeCardNumber(t *testing.T) {
	n, ok := normalizeCardNumber("4111-1111-1111-1111")
	assert.True(t, ok)
	assert.Equal(t, "4111111111111111", n)

	_, ok = normalizeCardNumber("411111111111111")
	assert.False(t, ok)
	_, ok = normalizeCardNumber("41111111111111112")
	assert.False(t, ok)
}

func TestValidCVV(t *testing.T) {
	assert.True(t, validCVV("123"))
	assert.True(t, validCVV("1234"))
	assert.False(t, validCVV("12"))
	assert.False(t, validCVV("12a"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "GREETING", StateGreeting.String())
	assert.Equal(t, "ASK_CARD_CVV", StateAskCardCVV.String())
	assert.Equal(t, "END", StateEnd.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
	assert.False(t, State(99).Valid())
}
