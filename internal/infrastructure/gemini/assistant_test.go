package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolarity(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"-0.8", -0.8},
		{"0", 0},
		{"Score: 0.35", 0.35},
		{"-1\n", -1},
	}
	for _, tt := range tests {
		got, err := parsePolarity(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}

	_, err := parsePolarity("very negative")
	assert.Error(t, err)
	_, err = parsePolarity("7")
	assert.Error(t, err)
}

func TestParseYesNo(t *testing.T) {
	yes, err := parseYesNo(" Yes.")
	require.NoError(t, err)
	assert.True(t, yes)

	yes, err = parseYesNo("no")
	require.NoError(t, err)
	assert.False(t, yes)

	_, err = parseYesNo("maybe")
	assert.Error(t, err)
}
