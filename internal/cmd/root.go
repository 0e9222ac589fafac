package cmd

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/noot-app/fetch-servings/internal/config"
	"github.com/noot-app/fetch-servings/internal/fetcher"
	"github.com/noot-app/fetch-servings/internal/provider"
	"github.com/noot-app/fetch-servings/internal/version"
)

// dependencies are swapped out in tests
type dependencies struct {
	newProvider func(cfg *config.Config, logger *slog.Logger) provider.Provider
	clock       clockwork.Clock
}

func defaultDependencies() dependencies {
	return dependencies{
		newProvider: provider.New,
		clock:       clockwork.NewRealClock(),
	}
}

// newRootCmd builds the fetch-servings command
func newRootCmd(deps dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-servings <account> <secret>",
		Short: "Fetch Cronometer servings as JSON",
		Long: `fetch-servings logs in to Cronometer with the given account and secret,
exports every serving logged from 2020-01-01 through yesterday and prints
them to stdout as a single JSON array:

  [{"date": "2022-04-01", "food": "Pasta, Dry, Unenriched", "amount": 90}]

Only amounts in grams (g) or millilitres (ml) are kept; servings logged in
other units (cups, tbsp, servings, ...) are skipped.

Stdout carries nothing but the JSON payload. On failure nothing is printed
to stdout, the error goes to stderr and the exit status is 1.

Environment (optional, also read from .env):
  LOG_LEVEL             DEBUG, INFO, WARN or ERROR (default INFO)
  ENV                   "development" adds source locations to log lines
  CRONOMETER_SYNTHETIC  "true" returns fake data without contacting Cronometer`,
		Args:          cobra.ExactArgs(2),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, deps)
		},
	}

	cmd.SetVersionTemplate("{{.Version}}\n")
	return cmd
}

// runFetch authenticates, fetches and prints the servings
func runFetch(cmd *cobra.Command, args []string, deps dependencies) error {
	cfg := config.Load()

	// Stdout is reserved for the payload
	logger := config.NewLogger(cmd.ErrOrStderr(), cfg)

	creds := provider.Credentials{
		Username: args[0],
		Password: args[1],
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	logger.Debug("Starting servings fetch", "version", version.Short(), "synthetic", cfg.Synthetic)

	f := fetcher.New(deps.newProvider(cfg, logger), deps.clock, logger)
	return f.Run(cmd.Context(), creds, cmd.OutOrStdout())
}

// Run is the main entry point for the CLI application
func Run(ctx context.Context) error {
	return newRootCmd(defaultDependencies()).ExecuteContext(ctx)
}
