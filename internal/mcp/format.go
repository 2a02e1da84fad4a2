package mcp

import (
	"fmt"
	"strings"

	"github.com/briantkatch/paprika-mcp/internal/recipe"
	"github.com/briantkatch/paprika-mcp/internal/store"
)

// FormatSearchResults renders one page of search results as markdown.
func FormatSearchResults(query string, out *SearchRecipesOutput) string {
	if out.TotalRecipes == 0 {
		return fmt.Sprintf("No recipes found matching %q", query)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d recipe", out.TotalRecipes))
	if out.TotalRecipes != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(fmt.Sprintf(" with %d total matches for %q\n", out.TotalMatches, query))
	sb.WriteString(fmt.Sprintf("Page %d of %d\n", out.Page, out.TotalPages))

	for _, rec := range out.Recipes {
		sb.WriteString(fmt.Sprintf("\n## %s (ID: %s)\n", rec.Title, rec.RecipeID))
		for _, m := range rec.Matches {
			sb.WriteString(fmt.Sprintf("- [%s] line %d: %s\n", m.Field, m.Line, m.Text))
		}
	}

	if out.Page < out.TotalPages {
		sb.WriteString(fmt.Sprintf("\nUse page=%d to see more results (up to page %d)\n",
			out.Page+1, out.TotalPages))
	}

	return sb.String()
}

// FormatRecipe renders a full recipe as markdown. categoryNames are the
// resolved names of the record's category UIDs.
func FormatRecipe(rec *recipe.Record, categoryNames []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n**ID:** %s\n", rec.Name, rec.UID))

	section := func(heading, body string) {
		if body != "" {
			sb.WriteString(fmt.Sprintf("\n## %s\n%s\n", heading, body))
		}
	}
	field := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("\n**%s:** %s\n", label, value))
		}
	}

	section("Description", rec.Description)
	if len(categoryNames) > 0 {
		section("Categories", strings.Join(categoryNames, ", "))
	}
	field("Source", rec.Source)
	field("Source URL", rec.SourceURL)
	field("Prep Time", rec.PrepTime)
	field("Cook Time", rec.CookTime)
	field("Total Time", rec.TotalTime)
	field("Servings", rec.Servings)
	field("Difficulty", rec.Difficulty)
	if rec.Rating > 0 {
		field("Rating", fmt.Sprintf("%d", rec.Rating))
	}
	section("Ingredients", rec.Ingredients)
	section("Directions", rec.Directions)
	section("Notes", rec.Notes)
	section("Nutritional Info", rec.NutritionalInfo)

	return sb.String()
}

// FormatProposal renders an edit proposal or applied edit as markdown.
func FormatProposal(out *UpdateRecipeOutput) string {
	var sb strings.Builder
	if out.Applied {
		sb.WriteString(fmt.Sprintf("Updated field %q in recipe %q (ID: %s)\n",
			out.Field, out.RecipeName, out.RecipeID))
	} else {
		sb.WriteString(fmt.Sprintf("Proposed edit to field %q in recipe %q (ID: %s) - NOT yet applied\n",
			out.Field, out.RecipeName, out.RecipeID))
		sb.WriteString("Re-run with confirm=true to persist this edit.\n")
	}
	sb.WriteString(fmt.Sprintf("\n%d replacement", out.MatchCount))
	if out.MatchCount != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(fmt.Sprintf("\n\nOld value:\n%s\n\nNew value:\n%s\n", out.OldValue, out.NewValue))
	return sb.String()
}

// FormatCategories renders categories as a hierarchy followed by a flat
// list for reference.
func FormatCategories(cats []store.Category) string {
	if len(cats) == 0 {
		return "No categories found"
	}

	byUID := make(map[string]store.Category, len(cats))
	children := make(map[string][]store.Category)
	var roots []store.Category
	for _, cat := range cats {
		byUID[cat.UID] = cat
		if cat.ParentUID == "" {
			roots = append(roots, cat)
		} else {
			children[cat.ParentUID] = append(children[cat.ParentUID], cat)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d categories\n\n## Hierarchy\n", len(cats)))

	var walk func(cat store.Category, depth int)
	walk = func(cat store.Category, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString("- " + cat.Name + "\n")
		for _, child := range children[cat.UID] {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}

	sb.WriteString("\n## Flat list\n")
	for _, cat := range cats {
		if parent, ok := byUID[cat.ParentUID]; ok {
			sb.WriteString(fmt.Sprintf("- %s (parent: %s)\n", cat.Name, parent.Name))
		} else {
			sb.WriteString("- " + cat.Name + "\n")
		}
	}

	return sb.String()
}
