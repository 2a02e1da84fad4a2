package recipe

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode canonical decomposition (NFD) so comparisons
// are independent of accent-encoding form. Case is preserved; callers that
// want case-insensitive matching fold case themselves (see Fold).
func Normalize(s string) string {
	return norm.NFD.String(s)
}

// Fold normalizes and lowercases text for case-insensitive,
// accent-insensitive substring matching.
func Fold(s string) string {
	return strings.ToLower(norm.NFD.String(s))
}

// EqualNormalized reports whether two strings are equal after NFD
// normalization. Used for exact-title lookup.
func EqualNormalized(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
