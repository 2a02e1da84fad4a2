// Package recipe implements the in-process query and mutation logic for
// Paprika recipe records: multi-field text search with contextual snippets,
// Unicode-normalized title lookup, scoped find/replace mutation, and a
// Unicode fraction formatter.
package recipe

import (
	"strings"

	"github.com/briantkatch/paprika-mcp/internal/errors"
)

// Record is one recipe as returned by the Paprika sync API.
// Records are owned by the remote store; this package only reads them and
// proposes field replacements.
type Record struct {
	UID             string   `json:"uid"`
	Name            string   `json:"name"`
	Ingredients     string   `json:"ingredients"`
	Directions      string   `json:"directions"`
	Description     string   `json:"description"`
	Notes           string   `json:"notes"`
	NutritionalInfo string   `json:"nutritional_info"`
	Servings        string   `json:"servings"`
	Difficulty      string   `json:"difficulty"`
	PrepTime        string   `json:"prep_time"`
	CookTime        string   `json:"cook_time"`
	TotalTime       string   `json:"total_time"`
	Source          string   `json:"source"`
	SourceURL       string   `json:"source_url"`
	Rating          int      `json:"rating"`
	Categories      []string `json:"categories"`
	Hash            string   `json:"hash"`
	InTrash         bool     `json:"in_trash"`
}

// Field identifies one searchable recipe field.
type Field string

// The closed set of searchable fields, in index order.
const (
	FieldName        Field = "name"
	FieldIngredients Field = "ingredients"
	FieldCategories  Field = "categories"
	FieldDirections  Field = "directions"
	FieldNotes       Field = "notes"
)

// SearchFields lists all searchable fields in their fixed index order.
var SearchFields = []Field{
	FieldName,
	FieldIngredients,
	FieldCategories,
	FieldDirections,
	FieldNotes,
}

// categorySeparator joins category names into a single searchable text.
const categorySeparator = ", "

// ParseField validates a field name against the searchable set.
func ParseField(name string) (Field, error) {
	for _, f := range SearchFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errors.Newf(errors.ErrCodeInvalidField,
		"unknown search field %q (valid: name, ingredients, categories, directions, notes)", name)
}

// FieldText pairs a field with its searchable text.
type FieldText struct {
	Field Field
	Text  string
}

// Fields extracts the searchable text of a record in fixed order:
// name, ingredients, categories, directions, notes. Categories are joined
// into one text block. No normalization is applied here.
func Fields(rec *Record) []FieldText {
	return []FieldText{
		{FieldName, rec.Name},
		{FieldIngredients, rec.Ingredients},
		{FieldCategories, strings.Join(rec.Categories, categorySeparator)},
		{FieldDirections, rec.Directions},
		{FieldNotes, rec.Notes},
	}
}

// FieldValue returns the text of one searchable field of a record.
func FieldValue(rec *Record, f Field) string {
	switch f {
	case FieldName:
		return rec.Name
	case FieldIngredients:
		return rec.Ingredients
	case FieldCategories:
		return strings.Join(rec.Categories, categorySeparator)
	case FieldDirections:
		return rec.Directions
	case FieldNotes:
		return rec.Notes
	}
	return ""
}
