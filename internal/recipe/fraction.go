package recipe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/briantkatch/paprika-mcp/internal/errors"
)

// vulgarFractions maps common numerator/denominator pairs to their
// dedicated single Unicode characters.
var vulgarFractions = map[[2]int]string{
	{1, 4}:  "¼",
	{1, 2}:  "½",
	{3, 4}:  "¾",
	{1, 7}:  "⅐",
	{1, 9}:  "⅑",
	{1, 10}: "⅒",
	{1, 3}:  "⅓",
	{2, 3}:  "⅔",
	{1, 5}:  "⅕",
	{2, 5}:  "⅖",
	{3, 5}:  "⅗",
	{4, 5}:  "⅘",
	{1, 6}:  "⅙",
	{5, 6}:  "⅚",
	{1, 8}:  "⅛",
	{3, 8}:  "⅜",
	{5, 8}:  "⅝",
	{7, 8}:  "⅞",
}

const (
	fractionSlash    = "⁄"
	superscriptRunes = "⁰¹²³⁴⁵⁶⁷⁸⁹"
	subscriptRunes   = "₀₁₂₃₄₅₆₇₈₉"
)

// fractionGlyphs is the closed set of characters that make up an
// already-formatted fraction: vulgar fractions, superscript digits, the
// fraction slash U+2044, and subscript digits. Membership is a fixed set,
// not a heuristic, so the passthrough branch stays exactly idempotent.
var fractionGlyphs = func() map[rune]bool {
	set := make(map[rune]bool)
	for _, glyph := range vulgarFractions {
		for _, r := range glyph {
			set[r] = true
		}
	}
	for _, r := range superscriptRunes + subscriptRunes + fractionSlash {
		set[r] = true
	}
	return set
}()

// fractionPattern accepts digit runs with whitespace permitted only around
// the slash, not inside the digit runs.
var fractionPattern = regexp.MustCompile(`^([0-9]+)\s*/\s*([0-9]+)$`)

var superscriptDigits = strings.Split(superscriptRunes, "")
var subscriptDigits = strings.Split(subscriptRunes, "")

// FormatFraction converts a fraction string to Unicode fraction glyphs.
// Simple fractions map to a single vulgar-fraction character ("1/4" to
// "¼"); anything else composes superscript digits, the fraction slash
// U+2044, and subscript digits ("31/200" to "³¹⁄₂₀₀"). Already-formatted
// input passes through unchanged. Pure function; the same input always
// yields the same output.
func FormatFraction(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.Newf(errors.ErrCodeInvalidFormat,
			"fraction is empty; expected a form like '1/4'")
	}

	if isFormattedFraction(trimmed) {
		return trimmed, nil
	}

	m := fractionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", errors.Newf(errors.ErrCodeInvalidFormat,
			"invalid fraction %q; expected '<numerator>/<denominator>' with non-negative integers", input)
	}

	num, err := strconv.Atoi(m[1])
	if err != nil {
		return "", errors.Newf(errors.ErrCodeInvalidFormat, "numerator %q is not a valid integer", m[1])
	}
	den, err := strconv.Atoi(m[2])
	if err != nil {
		return "", errors.Newf(errors.ErrCodeInvalidFormat, "denominator %q is not a valid integer", m[2])
	}
	if den == 0 {
		return "", errors.Newf(errors.ErrCodeInvalidFormat, "denominator must not be zero in %q", input)
	}

	if glyph, ok := vulgarFractions[[2]int{num, den}]; ok {
		return glyph, nil
	}

	var sb strings.Builder
	for _, d := range m[1] {
		sb.WriteString(superscriptDigits[d-'0'])
	}
	sb.WriteString(fractionSlash)
	for _, d := range m[2] {
		sb.WriteString(subscriptDigits[d-'0'])
	}
	return sb.String(), nil
}

// isFormattedFraction reports whether s consists entirely of characters
// from the fraction-glyph set.
func isFormattedFraction(s string) bool {
	for _, r := range s {
		if !fractionGlyphs[r] {
			return false
		}
	}
	return true
}
