package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/briantkatch/paprika-mcp/internal/config"
	"github.com/briantkatch/paprika-mcp/internal/output"
	"github.com/briantkatch/paprika-mcp/internal/store"
)

func newSetupCmd() *cobra.Command {
	var (
		email    string
		password string
		check    bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Store Paprika account credentials",
		Long: `Set up paprika-mcp by storing Paprika account credentials.

Prompts for the account email and password, verifies them against the
Paprika sync API, and writes them to ~/.paprika-mcp/config.yaml with
owner-only permissions.

Use --email and --password for non-interactive setup (e.g. scripts).
Use --check to verify the stored credentials without changing them.`,
		Example: `  # Interactive setup
  paprika-mcp setup

  # Non-interactive setup
  paprika-mcp setup --email you@example.com --password secret

  # Verify stored credentials
  paprika-mcp setup --check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runSetup(ctx, cmd, email, password, check)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Paprika account email (skips the prompt)")
	cmd.Flags().StringVar(&password, "password", "", "Paprika account password (skips the prompt)")
	cmd.Flags().BoolVar(&check, "check", false, "Only verify stored credentials, don't change them")

	return cmd
}

func runSetup(ctx context.Context, cmd *cobra.Command, email, password string, checkOnly bool) error {
	out := output.New(cmd.OutOrStdout())

	out.Status("🔧", "Paprika MCP Setup")
	out.Newline()

	if checkOnly {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return verifyCredentials(ctx, out, cfg)
	}

	if email == "" || password == "" {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("stdin is not a terminal; use --email and --password for non-interactive setup")
		}
		var err error
		email, password, err = promptCredentials(cmd, email, password)
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.NewConfig()
	}
	cfg.Email = email
	cfg.Password = password

	out.Status("🔍", "Verifying credentials...")
	if err := verifyCredentials(ctx, out, cfg); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out.Newline()
	out.Successf("Credentials saved to %s", config.YAMLPath())
	out.Status("💡", "Add paprika-mcp to your MCP client configuration to get started")
	return nil
}

// promptCredentials reads missing credentials from the terminal. The
// password is read with echo disabled.
func promptCredentials(cmd *cobra.Command, email, password string) (string, string, error) {
	reader := bufio.NewReader(cmd.InOrStdin())

	if email == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Paprika account email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", fmt.Errorf("email must not be empty")
	}

	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Paprika account password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return "", "", fmt.Errorf("password must not be empty")
	}

	return email, password, nil
}

// verifyCredentials performs a login against the Paprika API.
func verifyCredentials(ctx context.Context, out *output.Writer, cfg *config.Config) error {
	client, err := store.New(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		return err
	}

	if err := client.Login(ctx); err != nil {
		out.Error("Login failed")
		return err
	}

	out.Success("Credentials verified")
	return nil
}
