// Package cmd provides the CLI commands for paprika-mcp.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/briantkatch/paprika-mcp/internal/logging"
	"github.com/briantkatch/paprika-mcp/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the paprika-mcp CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paprika-mcp",
		Short: "MCP server for Paprika recipe accounts",
		Long: `paprika-mcp exposes a Paprika 3 recipe account to MCP clients
such as Claude Desktop: search recipes, read them in full, and make
reviewed find/replace edits to recipe fields.

Run 'paprika-mcp setup' once to store credentials, then add the binary
to your MCP client configuration. Running with no arguments starts the
server over stdio.`,
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runServe(cmd.Context(), "stdio")
		},
	}

	cmd.SetVersionTemplate("paprika-mcp version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.paprika-mcp/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables debug logging if the flag is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("Debug logging enabled", slog.String("log_file", logging.DefaultLogPath()))
	return nil
}

// stopLogging flushes and closes the debug log.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
