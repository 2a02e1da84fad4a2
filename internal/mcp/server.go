package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/briantkatch/paprika-mcp/internal/config"
	perrors "github.com/briantkatch/paprika-mcp/internal/errors"
	"github.com/briantkatch/paprika-mcp/internal/recipe"
	"github.com/briantkatch/paprika-mcp/internal/store"
	"github.com/briantkatch/paprika-mcp/pkg/version"
)

// Server is the MCP server for paprika-mcp. It bridges AI clients with a
// Paprika recipe account: search, read, and reviewable field edits.
type Server struct {
	mcp    *mcp.Server
	store  store.Store
	config *config.Config
	logger *slog.Logger
}

// Default pagination for search results.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NewServer creates a new MCP server over a recipe store.
func NewServer(st store.Store, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if st == nil {
		return nil, errors.New("recipe store is required")
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:  st,
		config: cfg,
		logger: logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "paprika",
			Version: version.Version,
		},
		nil, // ServerOptions - capabilities are inferred from registered tools/prompts
	)

	s.registerTools()
	s.registerPrompts()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Serve runs the server over the given transport until ctx is canceled.
// Only stdio is supported.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server", slog.String("transport", transport))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && err != context.Canceled {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		} else {
			s.logger.Info("MCP server stopped gracefully")
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "format_fraction",
		Description: "Format a fraction string to unicode fraction characters. " +
			"Converts simple fractions like '1/4' to '¼' and composes complex ones like '31/200' as '³¹⁄₂₀₀'. " +
			"Already-formatted unicode fractions pass through unchanged. " +
			"Runs locally without touching the recipe account.",
	}, s.handleFormatFraction)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "search_recipes",
		Description: "Search recipes by text across name, ingredients, categories, directions, or notes. " +
			"Returns recipe IDs, titles, and the matching lines with surrounding context. " +
			"Matching is case-insensitive and accent-insensitive. " +
			"Set regex=true for pattern matching, e.g. 'cherr(y|ies)' for singular/plural forms. " +
			"Use the category parameter (a category name, see list_categories) to restrict the search.",
	}, s.handleSearchRecipes)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "read_recipe",
		Description: "Read full recipe data by ID or exact title. " +
			"Title matching is accent-insensitive; if several recipes share the title the call " +
			"fails and asks for an ID. Returns all recipe fields plus a markdown rendering.",
	}, s.handleReadRecipe)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "update_recipe",
		Description: "Update one field of a recipe using find/replace. " +
			"This edits the user's recipe account and must be confirmed: by default the tool only " +
			"returns a preview of the change; call again with confirm=true to persist it. " +
			"With regex=true, 'find' is a regular expression and 'replace' may reference capture " +
			"groups with $1-style syntax. A find that matches nothing is an error, never a silent no-op.",
	}, s.handleUpdateRecipe)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name: "list_categories",
		Description: "List all recipe categories with their names and parent/child hierarchy. " +
			"Use this to find category names for search_recipes filtering.",
	}, s.handleListCategories)

	s.logger.Info("MCP tools registered", slog.Int("count", 5))
}

// registerPrompts registers the user_preferences prompt, which serves the
// optional ~/.paprika-mcp/prompt.md context file.
func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(&mcp.Prompt{
		Name: "user_preferences",
		Description: "Load user preferences and context from ~/.paprika-mcp/prompt.md, " +
			"such as dietary restrictions or favorite ingredients.",
	}, s.handleUserPreferences)
}

// handleFormatFraction is the MCP handler for the format_fraction tool.
func (s *Server) handleFormatFraction(_ context.Context, _ *mcp.CallToolRequest, input FormatFractionInput) (
	*mcp.CallToolResult,
	FormatFractionOutput,
	error,
) {
	formatted, err := recipe.FormatFraction(input.Fraction)
	if err != nil {
		return nil, FormatFractionOutput{}, MapError(err)
	}

	return nil, FormatFractionOutput{
		Original:  input.Fraction,
		Formatted: formatted,
	}, nil
}

// handleSearchRecipes is the MCP handler for the search_recipes tool.
func (s *Server) handleSearchRecipes(ctx context.Context, _ *mcp.CallToolRequest, input SearchRecipesInput) (
	*mcp.CallToolResult,
	SearchRecipesOutput,
	error,
) {
	start := time.Now()
	requestID := generateRequestID()

	if input.Query == "" {
		return nil, SearchRecipesOutput{}, NewInvalidParamsError("query parameter is required and must be a non-empty string")
	}

	contextLines := recipe.DefaultContextLines
	if input.ContextLines != nil {
		contextLines = *input.ContextLines
	}

	s.logger.Info("search_recipes started",
		slog.String("request_id", requestID),
		slog.String("query", input.Query),
		slog.Bool("regex", input.Regex))

	records, catIndex, err := s.snapshot(ctx)
	if err != nil {
		s.logger.Error("search_recipes failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return nil, SearchRecipesOutput{}, MapError(err)
	}

	if input.Category != "" {
		records, err = filterByCategory(records, catIndex, input.Category)
		if err != nil {
			return nil, SearchRecipesOutput{}, MapError(err)
		}
	}

	// Search over category names, not the UID list stored on the record.
	searchable := withCategoryNames(records, catIndex)

	fields := make([]recipe.Field, 0, len(input.Fields))
	for _, f := range input.Fields {
		parsed, err := recipe.ParseField(f)
		if err != nil {
			return nil, SearchRecipesOutput{}, MapError(err)
		}
		fields = append(fields, parsed)
	}

	results, err := recipe.Search(searchable, input.Query, recipe.SearchOptions{
		Fields:       fields,
		ContextLines: contextLines,
		Regex:        input.Regex,
	})
	if err != nil {
		return nil, SearchRecipesOutput{}, MapError(err)
	}

	output := paginateResults(results, input.Page, input.PageSize)
	output.Markdown = FormatSearchResults(input.Query, &output)

	s.logger.Info("search_recipes completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
		slog.Int("recipe_count", output.TotalRecipes),
		slog.Int("match_count", output.TotalMatches))

	return nil, output, nil
}

// handleReadRecipe is the MCP handler for the read_recipe tool.
func (s *Server) handleReadRecipe(ctx context.Context, _ *mcp.CallToolRequest, input ReadRecipeInput) (
	*mcp.CallToolResult,
	ReadRecipeOutput,
	error,
) {
	start := time.Now()
	requestID := generateRequestID()

	s.logger.Info("read_recipe started",
		slog.String("request_id", requestID),
		slog.String("id", input.ID),
		slog.String("title", input.Title))

	records, catIndex, err := s.snapshot(ctx)
	if err != nil {
		return nil, ReadRecipeOutput{}, MapError(err)
	}

	rec, err := recipe.Resolve(records, input.ID, input.Title)
	if err != nil {
		s.logger.Info("read_recipe failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return nil, ReadRecipeOutput{}, MapError(err)
	}

	categoryNames := catIndex.Names(rec.Categories)

	output := ReadRecipeOutput{
		RecipeID:        rec.UID,
		Name:            rec.Name,
		Description:     rec.Description,
		Categories:      categoryNames,
		Source:          rec.Source,
		SourceURL:       rec.SourceURL,
		PrepTime:        rec.PrepTime,
		CookTime:        rec.CookTime,
		TotalTime:       rec.TotalTime,
		Servings:        rec.Servings,
		Difficulty:      rec.Difficulty,
		Rating:          rec.Rating,
		Ingredients:     rec.Ingredients,
		Directions:      rec.Directions,
		Notes:           rec.Notes,
		NutritionalInfo: rec.NutritionalInfo,
	}
	output.Markdown = FormatRecipe(rec, categoryNames)

	s.logger.Info("read_recipe completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
		slog.String("uid", rec.UID))

	return nil, output, nil
}

// handleUpdateRecipe is the MCP handler for the update_recipe tool.
// The edit is computed as a pure proposal first; persistence only happens
// with confirm=true, keeping a human review gate in front of every write.
func (s *Server) handleUpdateRecipe(ctx context.Context, _ *mcp.CallToolRequest, input UpdateRecipeInput) (
	*mcp.CallToolResult,
	UpdateRecipeOutput,
	error,
) {
	start := time.Now()
	requestID := generateRequestID()

	if input.ID == "" {
		return nil, UpdateRecipeOutput{}, NewInvalidParamsError("id parameter is required")
	}

	s.logger.Info("update_recipe started",
		slog.String("request_id", requestID),
		slog.String("id", input.ID),
		slog.String("field", input.Field),
		slog.Bool("confirm", input.Confirm))

	rec, err := s.store.Recipe(ctx, input.ID)
	if err != nil {
		return nil, UpdateRecipeOutput{}, MapError(err)
	}

	proposal, err := recipe.Propose(rec, input.Field, input.Find, input.Replace, input.Regex)
	if err != nil {
		s.logger.Info("update_recipe rejected",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return nil, UpdateRecipeOutput{}, MapError(err)
	}

	output := UpdateRecipeOutput{
		RecipeID:   proposal.RecipeID,
		RecipeName: rec.Name,
		Field:      proposal.Field,
		MatchCount: proposal.MatchCount,
		OldValue:   proposal.OriginalValue,
		NewValue:   proposal.NewValue,
		Applied:    false,
	}

	if input.Confirm {
		if err := s.store.UpdateField(ctx, proposal.RecipeID, proposal.Field, proposal.NewValue); err != nil {
			return nil, UpdateRecipeOutput{}, MapError(err)
		}
		output.Applied = true
	}

	output.Markdown = FormatProposal(&output)

	s.logger.Info("update_recipe completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
		slog.Int("match_count", output.MatchCount),
		slog.Bool("applied", output.Applied))

	return nil, output, nil
}

// handleListCategories is the MCP handler for the list_categories tool.
func (s *Server) handleListCategories(ctx context.Context, _ *mcp.CallToolRequest, _ ListCategoriesInput) (
	*mcp.CallToolResult,
	ListCategoriesOutput,
	error,
) {
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return nil, ListCategoriesOutput{}, MapError(err)
	}

	byUID := make(map[string]store.Category, len(cats))
	for _, cat := range cats {
		byUID[cat.UID] = cat
	}

	output := ListCategoriesOutput{
		Categories: make([]CategoryOutput, 0, len(cats)),
	}
	for _, cat := range cats {
		co := CategoryOutput{Name: cat.Name}
		if parent, ok := byUID[cat.ParentUID]; ok {
			co.Parent = parent.Name
		}
		output.Categories = append(output.Categories, co)
	}
	output.Markdown = FormatCategories(cats)

	return nil, output, nil
}

// handleUserPreferences serves the optional user-preferences prompt file.
func (s *Server) handleUserPreferences(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	content, err := os.ReadFile(config.PromptPath())
	if err != nil {
		return &mcp.GetPromptResult{
			Description: "User preferences not configured",
			Messages: []*mcp.PromptMessage{{
				Role: "user",
				Content: &mcp.TextContent{
					Text: "No user preferences file found at " + config.PromptPath(),
				},
			}},
		}, nil
	}

	return &mcp.GetPromptResult{
		Description: "User preferences and context",
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: string(content)},
		}},
	}, nil
}

// snapshot fetches the recipe snapshot and category index for one request.
func (s *Server) snapshot(ctx context.Context) ([]*recipe.Record, *store.CategoryIndex, error) {
	records, err := s.store.Recipes(ctx)
	if err != nil {
		return nil, nil, err
	}
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return records, store.NewCategoryIndex(cats), nil
}

// withCategoryNames returns shallow copies of records with category UIDs
// replaced by names, leaving the snapshot untouched.
func withCategoryNames(records []*recipe.Record, idx *store.CategoryIndex) []*recipe.Record {
	out := make([]*recipe.Record, len(records))
	for i, rec := range records {
		copied := *rec
		copied.Categories = idx.Names(rec.Categories)
		out[i] = &copied
	}
	return out
}

// filterByCategory keeps only records belonging to the named category.
func filterByCategory(records []*recipe.Record, idx *store.CategoryIndex, name string) ([]*recipe.Record, error) {
	uid, ok := idx.UIDByName(name)
	if !ok {
		return nil, perrors.Newf(perrors.ErrCodeNotFound,
			"no category named %q; use list_categories to see available names", name)
	}

	var out []*recipe.Record
	for _, rec := range records {
		for _, catUID := range rec.Categories {
			if catUID == uid {
				out = append(out, rec)
				break
			}
		}
	}
	return out, nil
}

// paginateResults slices search results into one page and fills the
// page bookkeeping fields.
func paginateResults(results []recipe.RecipeMatches, page, pageSize int) SearchRecipesOutput {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	totalMatches := 0
	for _, rm := range results {
		totalMatches += len(rm.Matches)
	}

	totalPages := (len(results) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(results))

	output := SearchRecipesOutput{
		Recipes:      make([]SearchRecipeOutput, 0, end-start),
		TotalRecipes: len(results),
		TotalMatches: totalMatches,
		Page:         page,
		TotalPages:   totalPages,
	}

	for _, rm := range results[start:end] {
		ro := SearchRecipeOutput{
			RecipeID: rm.UID,
			Title:    rm.Name,
			Matches:  make([]SearchMatchOutput, 0, len(rm.Matches)),
		}
		for _, m := range rm.Matches {
			ro.Matches = append(ro.Matches, SearchMatchOutput{
				Field:   string(m.Field),
				Line:    m.Line,
				Text:    m.Text,
				Context: renderContext(m),
			})
		}
		output.Recipes = append(output.Recipes, ro)
	}

	return output
}

// renderContext joins a match's context lines around the matched line.
func renderContext(m recipe.MatchContext) string {
	lines := make([]string, 0, len(m.Before)+1+len(m.After))
	lines = append(lines, m.Before...)
	lines = append(lines, m.Text)
	lines = append(lines, m.After...)
	return strings.Join(lines, "\n")
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
