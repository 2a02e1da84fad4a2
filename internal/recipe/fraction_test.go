package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briantkatch/paprika-mcp/internal/errors"
)

func TestFormatFraction_CommonFractions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1/4", "¼"},
		{"1/2", "½"},
		{"3/4", "¾"},
		{"1/3", "⅓"},
		{"2/3", "⅔"},
		{"1/8", "⅛"},
		{"3/8", "⅜"},
		{"5/8", "⅝"},
		{"7/8", "⅞"},
		{"1/5", "⅕"},
		{"2/5", "⅖"},
		{"3/5", "⅗"},
		{"4/5", "⅘"},
		{"1/6", "⅙"},
		{"5/6", "⅚"},
		{"1/7", "⅐"},
		{"1/9", "⅑"},
		{"1/10", "⅒"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := FormatFraction(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFraction_ComposesComplexFractions(t *testing.T) {
	got, err := FormatFraction("31/200")
	require.NoError(t, err)
	assert.Equal(t, "³¹⁄₂₀₀", got)
}

func TestFormatFraction_WhitespaceAroundSlash(t *testing.T) {
	got, err := FormatFraction(" 31 / 200 ")
	require.NoError(t, err)
	assert.Equal(t, "³¹⁄₂₀₀", got)
}

func TestFormatFraction_AlreadyFormattedPassesThrough(t *testing.T) {
	for _, in := range []string{"¼", "½", "³¹⁄₂₀₀", "⅞"} {
		got, err := FormatFraction(in)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestFormatFraction_Idempotent(t *testing.T) {
	// format(format(x)) == format(x) for any valid input.
	for _, in := range []string{"1/4", "2/3", "31/200", "9/16", "¾"} {
		once, err := FormatFraction(in)
		require.NoError(t, err)

		twice, err := FormatFraction(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestFormatFraction_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"zero denominator", "4/0"},
		{"not a fraction", "abc"},
		{"empty", ""},
		{"whitespace only", "   "},
		{"missing denominator", "1/"},
		{"missing numerator", "/4"},
		{"too many parts", "1/2/3"},
		{"whitespace inside digits", "1 2/3"},
		{"negative numerator", "-1/2"},
		{"decimal", "1.5/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FormatFraction(tt.in)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetCode(err))
		})
	}
}

func TestFormatFraction_ZeroNumeratorComposes(t *testing.T) {
	// 0/4 is not in the vulgar table but is a valid non-negative fraction.
	got, err := FormatFraction("0/4")
	require.NoError(t, err)
	assert.Equal(t, "⁰⁄₄", got)
}
