package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/briantkatch/paprika-mcp/internal/errors"
)

// DefaultContextLines is the default number of surrounding lines shown
// around each match.
const DefaultContextLines = 2

// SearchOptions controls which fields are scanned and how much context is
// returned around each match.
type SearchOptions struct {
	// Fields restricts the search to a subset of fields. Nil or empty
	// means all fields.
	Fields []Field

	// ContextLines is the number of lines of surrounding text on each
	// side of a match. Must be >= 0.
	ContextLines int

	// Regex treats the query as a regular expression instead of a
	// literal substring. Useful for singular/plural forms such as
	// "cherr(y|ies)" or "bananas?".
	Regex bool
}

// MatchContext is a single occurrence of the query inside one field.
type MatchContext struct {
	Field Field `json:"field"`

	// Line is the 1-based line number of the match within the field.
	Line int `json:"line"`

	// Text is the matched line with surrounding whitespace trimmed.
	Text string `json:"text"`

	// Before and After hold up to ContextLines lines of surrounding
	// text, clipped at field boundaries.
	Before []string `json:"before,omitempty"`
	After  []string `json:"after,omitempty"`
}

// RecipeMatches groups the matches found in one recipe.
type RecipeMatches struct {
	UID     string         `json:"uid"`
	Name    string         `json:"name"`
	Matches []MatchContext `json:"matches"`
}

// Search scans records for query and returns per-recipe match locations
// with surrounding context. Matching is case-insensitive and
// accent-insensitive line-level substring matching; every occurrence on a
// line contributes one MatchContext. Recipes with no matches are omitted.
// Output order is stable relative to input order; within a recipe, fields
// follow index order and matches follow line order. No relevance ranking
// is performed.
func Search(records []*Record, query string, opts SearchOptions) ([]RecipeMatches, error) {
	if query == "" {
		return nil, errors.Newf(errors.ErrCodeInvalidQuery, "search query must not be empty")
	}
	if opts.ContextLines < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidArgument,
			"context_lines must be >= 0, got %d", opts.ContextLines)
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = SearchFields
	}
	requested := make(map[Field]bool, len(fields))
	for _, f := range fields {
		if _, err := ParseField(string(f)); err != nil {
			return nil, err
		}
		requested[f] = true
	}

	matcher, err := newLineMatcher(query, opts.Regex)
	if err != nil {
		return nil, err
	}

	var results []RecipeMatches
	for _, rec := range records {
		var matches []MatchContext
		for _, ft := range Fields(rec) {
			if !requested[ft.Field] || ft.Text == "" {
				continue
			}
			matches = append(matches, searchField(ft, matcher, opts.ContextLines)...)
		}
		if len(matches) > 0 {
			results = append(results, RecipeMatches{
				UID:     rec.UID,
				Name:    rec.Name,
				Matches: matches,
			})
		}
	}

	return results, nil
}

// lineMatcher counts query occurrences on a single folded line.
type lineMatcher func(foldedLine string) int

// newLineMatcher builds the occurrence counter for a query. Literal
// queries fold case and accents on both sides; regex queries compile with
// the case-insensitive flag.
func newLineMatcher(query string, useRegex bool) (lineMatcher, error) {
	if useRegex {
		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidPattern,
				fmt.Sprintf("invalid regex pattern %q: %v", query, err), err)
		}
		return func(line string) int {
			return len(re.FindAllStringIndex(line, -1))
		}, nil
	}

	folded := Fold(query)
	return func(line string) int {
		return strings.Count(line, folded)
	}, nil
}

// searchField scans one field's text line by line and emits a MatchContext
// per occurrence, with context clipped at the field boundaries.
func searchField(ft FieldText, matches lineMatcher, contextLines int) []MatchContext {
	lines := strings.Split(ft.Text, "\n")
	var out []MatchContext

	for i, line := range lines {
		n := matches(Fold(line))
		if n == 0 {
			continue
		}

		start := max(0, i-contextLines)
		end := min(len(lines), i+contextLines+1)

		mc := MatchContext{
			Field:  ft.Field,
			Line:   i + 1,
			Text:   strings.TrimSpace(line),
			Before: cloneLines(lines[start:i]),
			After:  cloneLines(lines[i+1 : end]),
		}
		for range n {
			out = append(out, mc)
		}
	}

	return out
}

// cloneLines copies a line slice so results do not alias the split buffer.
func cloneLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
