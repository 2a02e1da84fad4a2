package mcp

// FormatFractionInput defines the input schema for the format_fraction tool.
type FormatFractionInput struct {
	Fraction string `json:"fraction" jsonschema:"fraction in the form 'numerator/denominator' (e.g. '1/4', ' 31 / 200 '), or an already formatted unicode fraction"`
}

// FormatFractionOutput defines the output schema for the format_fraction tool.
type FormatFractionOutput struct {
	Original  string `json:"original" jsonschema:"the input as provided"`
	Formatted string `json:"formatted" jsonschema:"the unicode-formatted fraction"`
}

// SearchRecipesInput defines the input schema for the search_recipes tool.
type SearchRecipesInput struct {
	Query        string   `json:"query" jsonschema:"text to search for in recipes; must not be empty"`
	Fields       []string `json:"fields,omitempty" jsonschema:"fields to search: name, ingredients, categories, directions, notes; default all"`
	ContextLines *int     `json:"context_lines,omitempty" jsonschema:"lines of context around each match, default 2"`
	Regex        bool     `json:"regex,omitempty" jsonschema:"treat query as a regex pattern, e.g. 'cherr(y|ies)' or 'bananas?'"`
	Category     string   `json:"category,omitempty" jsonschema:"only search recipes in this category (by name, not UUID); use list_categories to see names"`
	Page         int      `json:"page,omitempty" jsonschema:"page number, default 1"`
	PageSize     int      `json:"page_size,omitempty" jsonschema:"recipes per page, default 20, max 100"`
}

// SearchMatchOutput is one match occurrence with its surrounding context.
type SearchMatchOutput struct {
	Field   string `json:"field" jsonschema:"the field the match occurred in"`
	Line    int    `json:"line" jsonschema:"1-based line number within the field"`
	Text    string `json:"text" jsonschema:"the matched line"`
	Context string `json:"context" jsonschema:"matched line with surrounding context lines"`
}

// SearchRecipeOutput groups the matches found in one recipe.
type SearchRecipeOutput struct {
	RecipeID string              `json:"recipe_id"`
	Title    string              `json:"title"`
	Matches  []SearchMatchOutput `json:"matches"`
}

// SearchRecipesOutput defines the output schema for the search_recipes tool.
type SearchRecipesOutput struct {
	Recipes      []SearchRecipeOutput `json:"recipes" jsonschema:"recipes with at least one match, in alphabetical order"`
	TotalRecipes int                  `json:"total_recipes" jsonschema:"total matching recipes across all pages"`
	TotalMatches int                  `json:"total_matches" jsonschema:"total match occurrences across all pages"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"total_pages"`
	Markdown     string               `json:"markdown" jsonschema:"human-readable rendering of this page of results"`
}

// ReadRecipeInput defines the input schema for the read_recipe tool.
// Exactly one of id or title must be provided.
type ReadRecipeInput struct {
	ID    string `json:"id,omitempty" jsonschema:"recipe UID to read"`
	Title string `json:"title,omitempty" jsonschema:"exact recipe title to read (alternative to id); accent-insensitive"`
}

// ReadRecipeOutput defines the output schema for the read_recipe tool.
type ReadRecipeOutput struct {
	RecipeID        string   `json:"recipe_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Categories      []string `json:"categories,omitempty" jsonschema:"category names"`
	Source          string   `json:"source,omitempty"`
	SourceURL       string   `json:"source_url,omitempty"`
	PrepTime        string   `json:"prep_time,omitempty"`
	CookTime        string   `json:"cook_time,omitempty"`
	TotalTime       string   `json:"total_time,omitempty"`
	Servings        string   `json:"servings,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
	Rating          int      `json:"rating,omitempty"`
	Ingredients     string   `json:"ingredients,omitempty"`
	Directions      string   `json:"directions,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	NutritionalInfo string   `json:"nutritional_info,omitempty"`
	Markdown        string   `json:"markdown" jsonschema:"full recipe rendered as markdown"`
}

// UpdateRecipeInput defines the input schema for the update_recipe tool.
type UpdateRecipeInput struct {
	ID      string `json:"id" jsonschema:"recipe UID to update"`
	Field   string `json:"field" jsonschema:"field to update: name, ingredients, directions, notes, description, source, source_url, prep_time, cook_time, total_time, servings, difficulty, nutritional_info"`
	Find    string `json:"find" jsonschema:"text to find in the field"`
	Replace string `json:"replace" jsonschema:"replacement text; with regex=true, capture groups use $1-style references"`
	Regex   bool   `json:"regex,omitempty" jsonschema:"treat find as a regex pattern, default false"`
	Confirm bool   `json:"confirm,omitempty" jsonschema:"false (default) previews the edit without writing; true persists it to the recipe account"`
}

// UpdateRecipeOutput defines the output schema for the update_recipe tool.
type UpdateRecipeOutput struct {
	RecipeID   string `json:"recipe_id"`
	RecipeName string `json:"recipe_name"`
	Field      string `json:"field"`
	MatchCount int    `json:"match_count" jsonschema:"number of replacements; always >= 1"`
	OldValue   string `json:"old_value"`
	NewValue   string `json:"new_value"`
	Applied    bool   `json:"applied" jsonschema:"true if the edit was persisted; false for a preview"`
	Markdown   string `json:"markdown" jsonschema:"human-readable summary of the edit"`
}

// ListCategoriesInput defines the input schema for the list_categories
// tool (no parameters).
type ListCategoriesInput struct{}

// CategoryOutput is one category with its resolved parent name.
type CategoryOutput struct {
	Name   string `json:"name"`
	Parent string `json:"parent,omitempty"`
}

// ListCategoriesOutput defines the output schema for the list_categories tool.
type ListCategoriesOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Markdown   string           `json:"markdown" jsonschema:"hierarchical rendering of the categories"`
}
