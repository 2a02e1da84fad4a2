package recipe

import (
	"github.com/briantkatch/paprika-mcp/internal/errors"
)

// ByID resolves a recipe by exact identifier match.
func ByID(records []*Record, id string) (*Record, error) {
	for _, rec := range records {
		if rec.UID == id {
			return rec, nil
		}
	}
	return nil, errors.Newf(errors.ErrCodeNotFound, "no recipe found with ID %q", id)
}

// ByTitle resolves a recipe by exact title, comparing NFD-normalized
// strings so lookups work across Unicode composition forms. Titles are not
// guaranteed unique: more than one match is reported as Ambiguous rather
// than an arbitrary pick.
func ByTitle(records []*Record, title string) (*Record, error) {
	want := Normalize(title)

	var found *Record
	count := 0
	for _, rec := range records {
		if Normalize(rec.Name) == want {
			if found == nil {
				found = rec
			}
			count++
		}
	}

	switch count {
	case 0:
		return nil, errors.Newf(errors.ErrCodeNotFound, "no recipe found with title %q", title)
	case 1:
		return found, nil
	default:
		return nil, errors.Newf(errors.ErrCodeAmbiguous,
			"%d recipes share the title %q", count, title).
			WithDetail("title", title).
			WithSuggestion("Use the recipe ID to disambiguate.")
	}
}

// Resolve looks up a recipe by exactly one of id or title.
// Supplying both or neither is an InvalidArgument error.
func Resolve(records []*Record, id, title string) (*Record, error) {
	switch {
	case id != "" && title != "":
		return nil, errors.InvalidArgument("provide either 'id' or 'title', not both")
	case id == "" && title == "":
		return nil, errors.InvalidArgument("must provide either 'id' or 'title'")
	case id != "":
		return ByID(records, id)
	default:
		return ByTitle(records, title)
	}
}
