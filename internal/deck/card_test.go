package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"As", "As"},
		{"as", "As"},
		{"AS", "As"},
		{"10h", "Th"},
		{"th", "Th"},
		{"9♠", "9s"},
		{"A♥", "Ah"},
		{" Kd ", "Kd"},
		{"", ""},
		{"x", "x"},
		{"zz", "zz"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("As"))
	assert.True(t, Valid("2c"))
	assert.True(t, Valid("Th"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("A"))
	assert.False(t, Valid("1s"))
	assert.False(t, Valid("Ax"))
	assert.False(t, Valid("AsK"))
}

func TestIsRed(t *testing.T) {
	assert.True(t, IsRed("Ah"))
	assert.True(t, IsRed("2d"))
	assert.False(t, IsRed("As"))
	assert.False(t, IsRed("2c"))
	assert.False(t, IsRed(""))
}

func TestPretty(t *testing.T) {
	assert.Equal(t, "T♥", Pretty("Th"))
	assert.Equal(t, "9♠", Pretty("9s"))
	assert.Equal(t, "__", Pretty(""))
}

func TestAllHas52UniqueCards(t *testing.T) {
	all := All()
	assert.Len(t, all, 52)

	seen := make(map[string]bool)
	for _, c := range all {
		assert.True(t, Valid(c), "card %q should be valid", c)
		assert.False(t, seen[c], "card %q duplicated", c)
		seen[c] = true
	}
}
