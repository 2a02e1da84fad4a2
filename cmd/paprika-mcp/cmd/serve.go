package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/briantkatch/paprika-mcp/internal/config"
	"github.com/briantkatch/paprika-mcp/internal/logging"
	mcpserver "github.com/briantkatch/paprika-mcp/internal/mcp"
	"github.com/briantkatch/paprika-mcp/internal/store"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server for AI client integration.

The server communicates over stdio using the Model Context Protocol.
Credentials come from ~/.paprika-mcp/config.yaml or the PAPRIKA_EMAIL
and PAPRIKA_PASSWORD environment variables.`,
		Example: `  # Start server on stdio (for Claude Desktop)
  paprika-mcp serve

  # Typical MCP client configuration:
  # {"command": "paprika-mcp", "args": ["serve"]}`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, transport)
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio", "Transport type (stdio)")

	return cmd
}

func runServe(ctx context.Context, transport string) error {
	// The MCP protocol owns stdout for JSON-RPC messages, so all
	// logging goes to the log file and stderr only.
	logCfg := logging.DefaultConfig()
	if debugMode {
		logCfg = logging.DebugConfig()
	}
	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	} else {
		defer cleanup()
	}
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, err := store.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing recipe store: %w", err)
	}

	server, err := mcpserver.NewServer(st, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	return server.Serve(ctx, transport)
}
