package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briantkatch/paprika-mcp/internal/recipe"
	"github.com/briantkatch/paprika-mcp/internal/store"
)

func TestFormatSearchResults_Empty(t *testing.T) {
	out := &SearchRecipesOutput{Page: 1, TotalPages: 1}

	md := FormatSearchResults("chocolate", out)

	assert.Contains(t, md, `No recipes found matching "chocolate"`)
}

func TestFormatSearchResults_RendersMatches(t *testing.T) {
	out := &SearchRecipesOutput{
		Recipes: []SearchRecipeOutput{{
			RecipeID: "uid-1",
			Title:    "Apple Pie",
			Matches: []SearchMatchOutput{
				{Field: "ingredients", Line: 2, Text: "1 cup sugar"},
			},
		}},
		TotalRecipes: 1,
		TotalMatches: 1,
		Page:         1,
		TotalPages:   1,
	}

	md := FormatSearchResults("sugar", out)

	assert.Contains(t, md, "Found 1 recipe with 1 total matches")
	assert.Contains(t, md, "## Apple Pie (ID: uid-1)")
	assert.Contains(t, md, "- [ingredients] line 2: 1 cup sugar")
	assert.NotContains(t, md, "page=2")
}

func TestFormatSearchResults_NextPageHint(t *testing.T) {
	out := &SearchRecipesOutput{
		Recipes:      []SearchRecipeOutput{{RecipeID: "uid-1", Title: "Apple Pie"}},
		TotalRecipes: 40,
		TotalMatches: 40,
		Page:         1,
		TotalPages:   2,
	}

	md := FormatSearchResults("sugar", out)

	assert.Contains(t, md, "page=2")
}

func TestFormatRecipe_OmitsEmptyFields(t *testing.T) {
	rec := &recipe.Record{
		UID:         "uid-1",
		Name:        "Apple Pie",
		Ingredients: "6 apples",
	}

	md := FormatRecipe(rec, nil)

	assert.Contains(t, md, "# Apple Pie")
	assert.Contains(t, md, "**ID:** uid-1")
	assert.Contains(t, md, "## Ingredients\n6 apples")
	assert.NotContains(t, md, "Directions")
	assert.NotContains(t, md, "Rating")
}

func TestFormatRecipe_CategoriesAndRating(t *testing.T) {
	rec := &recipe.Record{UID: "uid-1", Name: "Apple Pie", Rating: 4}

	md := FormatRecipe(rec, []string{"Dessert", "Baking"})

	assert.Contains(t, md, "Dessert, Baking")
	assert.Contains(t, md, "**Rating:** 4")
}

func TestFormatProposal_Preview(t *testing.T) {
	md := FormatProposal(&UpdateRecipeOutput{
		RecipeID:   "uid-1",
		RecipeName: "Apple Pie",
		Field:      "ingredients",
		MatchCount: 2,
		OldValue:   "1 cup sugar",
		NewValue:   "3/4 cup sugar",
	})

	assert.Contains(t, md, "NOT yet applied")
	assert.Contains(t, md, "confirm=true")
	assert.Contains(t, md, "2 replacements")
}

func TestFormatProposal_Applied(t *testing.T) {
	md := FormatProposal(&UpdateRecipeOutput{
		RecipeID:   "uid-1",
		RecipeName: "Apple Pie",
		Field:      "ingredients",
		MatchCount: 1,
		Applied:    true,
	})

	assert.Contains(t, md, "Updated field")
	assert.NotContains(t, md, "confirm=true")
	assert.Contains(t, md, "1 replacement\n")
}

func TestFormatCategories_Hierarchy(t *testing.T) {
	md := FormatCategories([]store.Category{
		{UID: "c1", Name: "Dessert"},
		{UID: "c2", Name: "Baking", ParentUID: "c1"},
	})

	assert.Contains(t, md, "Found 2 categories")
	assert.Contains(t, md, "- Dessert\n  - Baking")
	assert.Contains(t, md, "- Baking (parent: Dessert)")
}

func TestFormatCategories_Empty(t *testing.T) {
	assert.Equal(t, "No categories found", FormatCategories(nil))
}
