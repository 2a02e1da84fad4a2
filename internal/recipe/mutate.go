package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/briantkatch/paprika-mcp/internal/errors"
)

// WritableFields lists the recipe fields that accept text find/replace.
// Categories are excluded: the remote store manages them as a UID list,
// not free text.
var WritableFields = []string{
	"name",
	"ingredients",
	"directions",
	"notes",
	"description",
	"source",
	"source_url",
	"prep_time",
	"cook_time",
	"total_time",
	"servings",
	"difficulty",
	"nutritional_info",
}

// EditProposal is the output of Propose: the computed replacement for one
// field of one recipe. It is never applied automatically; the caller
// reviews and persists it through the external store.
type EditProposal struct {
	RecipeID      string `json:"recipe_id"`
	Field         string `json:"field"`
	OriginalValue string `json:"original_value"`
	NewValue      string `json:"new_value"`
	MatchCount    int    `json:"match_count"`
}

// Propose applies a literal or regex find/replace to one field of a record
// and returns the new value with a change report, without writing anything
// back. Zero matches is a NoMatch error, never a silent no-op: a no-op
// edit usually means the find text does not match current content.
// A self-replacement (new value identical to the original) with at least
// one match still counts as success.
//
// Regex replacements use Go's $1-style group references.
func Propose(rec *Record, field, find, replace string, useRegex bool) (*EditProposal, error) {
	if find == "" {
		return nil, errors.InvalidArgument("find text must not be empty")
	}

	current, err := writableFieldValue(rec, field)
	if err != nil {
		return nil, err
	}

	var newValue string
	var count int
	if useRegex {
		re, compileErr := regexp.Compile(find)
		if compileErr != nil {
			return nil, errors.New(errors.ErrCodeInvalidPattern,
				fmt.Sprintf("invalid regex pattern %q: %v", find, compileErr), compileErr)
		}
		count = len(re.FindAllStringIndex(current, -1))
		newValue = re.ReplaceAllString(current, replace)
	} else {
		count = strings.Count(current, find)
		newValue = strings.ReplaceAll(current, find, replace)
	}

	if count == 0 {
		return nil, errors.Newf(errors.ErrCodeNoMatch,
			"pattern %q not found in field %q of recipe %q", find, field, rec.Name)
	}

	return &EditProposal{
		RecipeID:      rec.UID,
		Field:         field,
		OriginalValue: current,
		NewValue:      newValue,
		MatchCount:    count,
	}, nil
}

// writableFieldValue reads the current text of a writable field.
func writableFieldValue(rec *Record, field string) (string, error) {
	switch field {
	case "name":
		return rec.Name, nil
	case "ingredients":
		return rec.Ingredients, nil
	case "directions":
		return rec.Directions, nil
	case "notes":
		return rec.Notes, nil
	case "description":
		return rec.Description, nil
	case "source":
		return rec.Source, nil
	case "source_url":
		return rec.SourceURL, nil
	case "prep_time":
		return rec.PrepTime, nil
	case "cook_time":
		return rec.CookTime, nil
	case "total_time":
		return rec.TotalTime, nil
	case "servings":
		return rec.Servings, nil
	case "difficulty":
		return rec.Difficulty, nil
	case "nutritional_info":
		return rec.NutritionalInfo, nil
	case "categories":
		return "", errors.InvalidArgument(
			"categories are managed as a list by the recipe store and cannot be edited as text")
	default:
		return "", errors.Newf(errors.ErrCodeInvalidField,
			"unknown field %q (writable: %s)", field, strings.Join(WritableFields, ", "))
	}
}
