package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/briantkatch/paprika-mcp/internal/config"
	"github.com/briantkatch/paprika-mcp/internal/output"
	"github.com/briantkatch/paprika-mcp/internal/recipe"
	"github.com/briantkatch/paprika-mcp/internal/store"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	fields       []string
	contextLines int
	regex        bool
	format       string // "text", "json"
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recipes from the command line",
		Long: `Search recipes by text across name, ingredients, categories,
directions, and notes. Matching is case-insensitive and accent-insensitive.`,
		Example: `  paprika-mcp search "chocolate"
  paprika-mcp search "butter" --field ingredients --context 0
  paprika-mcp search "cherr(y|ies)" --regex
  paprika-mcp search "flour" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearchCLI(cmd.Context(), cmd, query, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.fields, "field", "f", nil, "Fields to search (repeatable): name, ingredients, categories, directions, notes")
	cmd.Flags().IntVarP(&opts.contextLines, "context", "C", recipe.DefaultContextLines, "Lines of context around each match")
	cmd.Flags().BoolVar(&opts.regex, "regex", false, "Treat the query as a regular expression")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json")

	return cmd
}

func runSearchCLI(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	out := output.New(cmd.OutOrStdout())

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, err := store.New(cfg, slog.Default())
	if err != nil {
		return err
	}

	records, err := st.Recipes(ctx)
	if err != nil {
		return err
	}

	cats, err := st.Categories(ctx)
	if err != nil {
		return err
	}
	idx := store.NewCategoryIndex(cats)
	for i, rec := range records {
		copied := *rec
		copied.Categories = idx.Names(rec.Categories)
		records[i] = &copied
	}

	fields := make([]recipe.Field, 0, len(opts.fields))
	for _, f := range opts.fields {
		parsed, err := recipe.ParseField(f)
		if err != nil {
			return err
		}
		fields = append(fields, parsed)
	}

	results, err := recipe.Search(records, query, recipe.SearchOptions{
		Fields:       fields,
		ContextLines: opts.contextLines,
		Regex:        opts.regex,
	})
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		out.Statusf("🔍", "No recipes match %q", query)
		return nil
	}

	totalMatches := 0
	for _, rm := range results {
		totalMatches += len(rm.Matches)
	}
	out.Statusf("🔍", "%d recipes, %d matches for %q", len(results), totalMatches, query)
	out.Newline()

	for _, rm := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", rm.Name, rm.UID)
		for _, m := range rm.Matches {
			fmt.Fprintf(cmd.OutOrStdout(), "  [%s] line %d: %s\n", m.Field, m.Line, m.Text)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}
