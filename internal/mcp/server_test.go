package mcp

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briantkatch/paprika-mcp/internal/config"
	"github.com/briantkatch/paprika-mcp/internal/recipe"
	"github.com/briantkatch/paprika-mcp/internal/store"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	records    []*recipe.Record
	categories []store.Category

	updatedUID   string
	updatedField string
	updatedValue string
}

func (f *fakeStore) Recipes(_ context.Context) ([]*recipe.Record, error) {
	return f.records, nil
}

func (f *fakeStore) Recipe(_ context.Context, uid string) (*recipe.Record, error) {
	return recipe.ByID(f.records, uid)
}

func (f *fakeStore) Categories(_ context.Context) ([]store.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) UpdateField(_ context.Context, uid, field, newValue string) error {
	rec, err := recipe.ByID(f.records, uid)
	if err != nil {
		return err
	}
	f.updatedUID = uid
	f.updatedField = field
	f.updatedValue = newValue
	if field == "ingredients" {
		rec.Ingredients = newValue
	}
	return nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: []*recipe.Record{
			{
				UID:         "uid-1",
				Name:        "Apple Pie",
				Ingredients: "2 cups flour\n1 cup sugar\n6 apples",
				Directions:  "Mix the dough.\nAdd the apples.\nBake until golden.",
				Categories:  []string{"cat-dessert"},
			},
			{
				UID:         "uid-2",
				Name:        "Zucchini Bread",
				Ingredients: "3 cups flour\n2 zucchini\n2 eggs",
				Directions:  "Grate the zucchini.\nBake for an hour.",
				Categories:  []string{"cat-baking"},
			},
		},
		categories: []store.Category{
			{UID: "cat-dessert", Name: "Dessert"},
			{UID: "cat-baking", Name: "Baking", ParentUID: "cat-dessert"},
		},
	}
}

func newTestServer(t *testing.T, st store.Store) *Server {
	t.Helper()

	s, err := NewServer(st, config.NewConfig(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return s
}

func TestNewServer_RequiresStore(t *testing.T) {
	_, err := NewServer(nil, nil, nil)
	assert.Error(t, err)
}

func TestHandleFormatFraction(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, out, err := s.handleFormatFraction(context.Background(), nil, FormatFractionInput{Fraction: "1/4"})

	require.NoError(t, err)
	assert.Equal(t, "1/4", out.Original)
	assert.Equal(t, "¼", out.Formatted)
}

func TestHandleFormatFraction_InvalidInput(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, _, err := s.handleFormatFraction(context.Background(), nil, FormatFractionInput{Fraction: "abc"})

	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}

func TestHandleSearchRecipes(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, out, err := s.handleSearchRecipes(context.Background(), nil, SearchRecipesInput{Query: "flour"})

	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalRecipes)
	require.Len(t, out.Recipes, 2)
	assert.Equal(t, "Apple Pie", out.Recipes[0].Title)
	assert.Equal(t, "Zucchini Bread", out.Recipes[1].Title)
	assert.Contains(t, out.Markdown, "Apple Pie")
}

func TestHandleSearchRecipes_EmptyQuery(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, _, err := s.handleSearchRecipes(context.Background(), nil, SearchRecipesInput{})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}

func TestHandleSearchRecipes_MatchesCategoryNames(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	// Records carry category UIDs; search must see the resolved names.
	_, out, err := s.handleSearchRecipes(context.Background(), nil, SearchRecipesInput{Query: "Dessert"})

	require.NoError(t, err)
	require.Len(t, out.Recipes, 1)
	assert.Equal(t, "uid-1", out.Recipes[0].RecipeID)
	assert.Equal(t, "categories", out.Recipes[0].Matches[0].Field)
}

func TestHandleSearchRecipes_CategoryFilter(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, out, err := s.handleSearchRecipes(context.Background(), nil, SearchRecipesInput{
		Query:    "flour",
		Category: "baking",
	})

	require.NoError(t, err)
	require.Len(t, out.Recipes, 1)
	assert.Equal(t, "uid-2", out.Recipes[0].RecipeID)
}

func TestHandleSearchRecipes_UnknownCategory(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, _, err := s.handleSearchRecipes(context.Background(), nil, SearchRecipesInput{
		Query:    "flour",
		Category: "Breakfast",
	})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeRecipeNotFound, mcpErr.Code)
}

func TestHandleSearchRecipes_Pagination(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, out, err := s.handleSearchRecipes(context.Background(), nil, SearchRecipesInput{
		Query:    "flour",
		Page:     2,
		PageSize: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalRecipes)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 2, out.TotalPages)
	require.Len(t, out.Recipes, 1)
	assert.Equal(t, "Zucchini Bread", out.Recipes[0].Title)
}

func TestHandleReadRecipe_ByID(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, out, err := s.handleReadRecipe(context.Background(), nil, ReadRecipeInput{ID: "uid-1"})

	require.NoError(t, err)
	assert.Equal(t, "Apple Pie", out.Name)
	assert.Equal(t, []string{"Dessert"}, out.Categories)
	assert.Contains(t, out.Markdown, "# Apple Pie")
}

func TestHandleReadRecipe_ByTitle(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, out, err := s.handleReadRecipe(context.Background(), nil, ReadRecipeInput{Title: "Zucchini Bread"})

	require.NoError(t, err)
	assert.Equal(t, "uid-2", out.RecipeID)
}

func TestHandleReadRecipe_NotFound(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, _, err := s.handleReadRecipe(context.Background(), nil, ReadRecipeInput{ID: "uid-99"})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeRecipeNotFound, mcpErr.Code)
}

func TestHandleReadRecipe_AmbiguousTitle(t *testing.T) {
	st := newFakeStore()
	st.records = append(st.records, &recipe.Record{UID: "uid-3", Name: "Apple Pie"})
	s := newTestServer(t, st)

	_, _, err := s.handleReadRecipe(context.Background(), nil, ReadRecipeInput{Title: "Apple Pie"})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeAmbiguousTitle, mcpErr.Code)
}

func TestHandleUpdateRecipe_PreviewDoesNotWrite(t *testing.T) {
	st := newFakeStore()
	s := newTestServer(t, st)

	_, out, err := s.handleUpdateRecipe(context.Background(), nil, UpdateRecipeInput{
		ID:      "uid-1",
		Field:   "ingredients",
		Find:    "1 cup sugar",
		Replace: "3/4 cup sugar",
	})

	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, 1, out.MatchCount)
	assert.Contains(t, out.NewValue, "3/4 cup sugar")
	assert.Empty(t, st.updatedUID)
	assert.Contains(t, out.Markdown, "confirm=true")
}

func TestHandleUpdateRecipe_ConfirmPersists(t *testing.T) {
	st := newFakeStore()
	s := newTestServer(t, st)

	_, out, err := s.handleUpdateRecipe(context.Background(), nil, UpdateRecipeInput{
		ID:      "uid-1",
		Field:   "ingredients",
		Find:    "1 cup sugar",
		Replace: "3/4 cup sugar",
		Confirm: true,
	})

	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, "uid-1", st.updatedUID)
	assert.Equal(t, "ingredients", st.updatedField)
	assert.Contains(t, st.updatedValue, "3/4 cup sugar")
}

func TestHandleUpdateRecipe_NoMatch(t *testing.T) {
	st := newFakeStore()
	s := newTestServer(t, st)

	_, _, err := s.handleUpdateRecipe(context.Background(), nil, UpdateRecipeInput{
		ID:      "uid-1",
		Field:   "ingredients",
		Find:    "chocolate",
		Replace: "vanilla",
		Confirm: true,
	})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeNoMatch, mcpErr.Code)
	assert.Empty(t, st.updatedUID)
}

func TestHandleUpdateRecipe_RequiresID(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, _, err := s.handleUpdateRecipe(context.Background(), nil, UpdateRecipeInput{
		Field:   "ingredients",
		Find:    "sugar",
		Replace: "honey",
	})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}

func TestHandleListCategories(t *testing.T) {
	s := newTestServer(t, newFakeStore())

	_, out, err := s.handleListCategories(context.Background(), nil, ListCategoriesInput{})

	require.NoError(t, err)
	require.Len(t, out.Categories, 2)
	assert.Equal(t, "Dessert", out.Categories[0].Name)
	assert.Equal(t, "Baking", out.Categories[1].Name)
	assert.Equal(t, "Dessert", out.Categories[1].Parent)
	assert.Contains(t, out.Markdown, "Baking")
}

func TestPaginateResults_ClampsPageSize(t *testing.T) {
	results := make([]recipe.RecipeMatches, 3)
	for i := range results {
		results[i] = recipe.RecipeMatches{UID: "uid", Name: "Recipe"}
	}

	out := paginateResults(results, 0, 500)

	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 1, out.TotalPages)
	assert.Len(t, out.Recipes, 3)
}

func TestPaginateResults_PageBeyondEnd(t *testing.T) {
	results := []recipe.RecipeMatches{{UID: "uid-1", Name: "Recipe"}}

	out := paginateResults(results, 9, 20)

	assert.Equal(t, 1, out.Page)
	assert.Len(t, out.Recipes, 1)
}

func TestGenerateRequestID_Unique(t *testing.T) {
	a := generateRequestID()
	b := generateRequestID()

	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}
