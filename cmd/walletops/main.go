// Package main provides the walletops maintenance CLI for the wallet backend and its
// component tree.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/jonathan/wallet-maint/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile string
	envFiles   []string
	baseURL    string
	verbose    bool

	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg    config.Config
	logger = zap.NewNop()
)

// newLogger builds the diagnostics logger; tests replace it.
var newLogger = func(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

var rootCmd = &cobra.Command{
	Use:   "walletops",
	Short: "Maintenance commands for the wallet backend and component tree",
	Long: `walletops bundles one-off maintenance tasks: probing the hosted database for
applied migrations and schema problems, purging a table behind a typed confirmation,
and rewriting component markup (emoji to icon components, accessibility attributes).

Connection settings come from .env.local/.env, the environment, an optional --config
JSON file and flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		loaded, err := config.LoadEnv(envFiles...)
		if err != nil {
			return err
		}
		logger.Debug("loaded env files", zap.Strings("files", loaded))

		cfg, err = resolveConfig(cmd)
		return err
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Dotenv file to load (repeatable; default .env.local then .env)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "Project base URL (overrides SUPABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and request tracing")
}

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}
