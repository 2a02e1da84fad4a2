package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/briantkatch/paprika-mcp/internal/config"
	"github.com/briantkatch/paprika-mcp/internal/output"
	"github.com/briantkatch/paprika-mcp/internal/store"
)

func newDoctorCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and diagnose issues",
		Long: `Run diagnostics to ensure paprika-mcp can operate correctly.

Checks:
  - Config file presence and validity
  - Credentials configured
  - Paprika API reachability and login
  - Recipe sync (fetches the recipe index)
  - Cache directory writable

Use --json for machine-readable output.`,
		Example: `  # Run diagnostics
  paprika-mcp doctor

  # JSON output for scripting
  paprika-mcp doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runDoctor(ctx, cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// checkResult is one diagnostic outcome.
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warn", "fail"
	Message string `json:"message"`
}

func runDoctor(ctx context.Context, cmd *cobra.Command, jsonOutput bool) error {
	results := runChecks(ctx)

	if jsonOutput {
		status := "ok"
		for _, r := range results {
			if r.Status == "fail" {
				status = "fail"
				break
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"status": status, "checks": results}); err != nil {
			return err
		}
		if status == "fail" {
			return fmt.Errorf("diagnostics failed")
		}
		return nil
	}

	out := output.New(cmd.OutOrStdout())
	out.Status("🩺", "Paprika MCP Diagnostics")
	out.Newline()

	failed := false
	for _, r := range results {
		switch r.Status {
		case "ok":
			out.Successf("%s: %s", r.Name, r.Message)
		case "warn":
			out.Warningf("%s: %s", r.Name, r.Message)
		default:
			out.Errorf("%s: %s", r.Name, r.Message)
			failed = true
		}
	}

	out.Newline()
	if failed {
		out.Status("💡", "Run 'paprika-mcp setup' to fix credential issues")
		return fmt.Errorf("diagnostics failed")
	}
	out.Success("All checks passed")
	return nil
}

func runChecks(ctx context.Context) []checkResult {
	var results []checkResult

	cfg, err := config.Load()
	if err != nil {
		results = append(results, checkResult{"config", "fail", err.Error()})
		return results
	}
	if _, statErr := os.Stat(config.YAMLPath()); statErr == nil {
		results = append(results, checkResult{"config", "ok", "loaded from " + config.YAMLPath()})
	} else {
		results = append(results, checkResult{"config", "warn", "no config file, using environment variables"})
	}

	if _, _, err := cfg.Credentials(); err != nil {
		results = append(results, checkResult{"credentials", "fail", err.Error()})
		return results
	}
	results = append(results, checkResult{"credentials", "ok", "email and password configured"})

	client, err := store.New(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		results = append(results, checkResult{"store", "fail", err.Error()})
		return results
	}

	loginCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := client.Login(loginCtx); err != nil {
		results = append(results, checkResult{"login", "fail", err.Error()})
		return results
	}
	results = append(results, checkResult{"login", "ok", "Paprika API accepted the credentials"})

	records, err := client.Recipes(ctx)
	if err != nil {
		results = append(results, checkResult{"recipes", "fail", err.Error()})
	} else {
		results = append(results, checkResult{"recipes", "ok", fmt.Sprintf("%d recipes synced", len(records))})
	}

	if err := checkCacheWritable(cfg.CacheDir); err != nil {
		results = append(results, checkResult{"cache", "fail", err.Error()})
	} else {
		results = append(results, checkResult{"cache", "ok", cfg.CacheDir + " is writable"})
	}

	return results
}

// checkCacheWritable verifies the cache directory exists and accepts writes.
func checkCacheWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
