package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/wallet-maint/internal/config"
	"github.com/jonathan/wallet-maint/internal/db"
	"github.com/jonathan/wallet-maint/internal/observability"
	"github.com/jonathan/wallet-maint/internal/postgrest"
	"github.com/jonathan/wallet-maint/internal/rewrite"
	"github.com/jonathan/wallet-maint/internal/rules"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resolveConfig layers flags over the environment over the config file over defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	layered := config.Defaults()

	if configFile != "" {
		fileCfg, err := config.LoadConfig(configFile)
		if err != nil {
			return config.Config{}, err
		}
		layered = fileCfg.MergeWithDefaults(layered)
	}

	env := config.FromEnv()
	layered = env.MergeWithDefaults(layered)

	flags := config.Config{
		SupabaseURL:   baseURL,
		DatabaseURL:   stringFlag(cmd, "db-url"),
		ComponentsDir: stringFlag(cmd, "dir"),
		RulesFile:     stringFlag(cmd, "rules"),
		Extensions:    sliceFlag(cmd, "ext"),
		Exclude:       sliceFlag(cmd, "exclude"),
		Verbose:       verbose,
	}
	layered = flags.MergeWithDefaults(layered)

	if err := layered.Validate(); err != nil {
		return config.Config{}, err
	}
	return layered, nil
}

// stringFlag returns a command-local flag value when the flag exists and was set.
func stringFlag(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return ""
	}
	return f.Value.String()
}

func sliceFlag(cmd *cobra.Command, name string) []string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil
	}
	values, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return values
}

func newPrinter(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}

// restClient checks the REST settings and the credential, then builds a client. A
// mutating command refuses an expired credential; other problems are warnings.
func restClient(p *observability.Printer, mutating bool) (*postgrest.Client, error) {
	if err := cfg.RequireREST(); err != nil {
		return nil, err
	}

	cred, err := config.InspectCredential(cfg.APIKey())
	if err != nil {
		logger.Debug("credential is not inspectable", zap.Error(err))
	} else {
		now := time.Now()
		for _, w := range cred.Warnings(cfg.SupabaseURL, now) {
			p.Warn("%s", w)
		}
		if mutating && cred.Expired(now) {
			return nil, fmt.Errorf("refusing to modify data with an expired credential")
		}
	}

	return postgrest.NewClient(cfg.SupabaseURL, cfg.APIKey(), postgrest.WithLogger(logger))
}

func connectDB(ctx context.Context) (*db.DB, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

// loadRuleSet returns the built-in rule tables, overlaid by the rules file if one is
// configured.
func loadRuleSet() (*rules.Set, error) {
	set := rules.Default()
	if cfg.RulesFile != "" {
		var err error
		if set, err = rules.Load(cfg.RulesFile); err != nil {
			return nil, err
		}
	}
	logger.Debug("rule tables",
		zap.String("path", cfg.RulesFile),
		zap.Strings("icons", set.IconNames()),
		zap.Int("labels", len(set.Labels)))
	return set, nil
}

// targetFiles lists the component files a rewrite command operates on.
func targetFiles(recursive bool) ([]string, error) {
	if err := cfg.RequireDirectory(); err != nil {
		return nil, err
	}
	return rewrite.NewWalker(cfg.ComponentsDir, cfg.Extensions, cfg.Exclude, recursive).Files()
}

// addRewriteFlags registers the flags shared by the markup rewriting commands.
func addRewriteFlags(cmd *cobra.Command, dryRun, recursive *bool) {
	cmd.Flags().String("dir", "", "Components directory (overrides COMPONENTS_DIR; default components)")
	cmd.Flags().StringSlice("ext", nil, "File extensions to process (default .tsx)")
	cmd.Flags().StringSlice("exclude", nil, "File names or glob patterns to skip")
	cmd.Flags().String("rules", "", "YAML rule file extending the built-in tables")
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "Report changes without writing files")
	cmd.Flags().BoolVarP(recursive, "recursive", "r", false, "Descend into subdirectories")
}

// reportSummary prints the per-file outcome of a rewrite run and turns file failures
// into an error once the batch is done.
func reportSummary(p *observability.Printer, title, unit string, summary *rewrite.Summary, dryRun bool) error {
	changes := make([]observability.FileCount, len(summary.Changes))
	for i, c := range summary.Changes {
		changes[i] = observability.FileCount{Path: c.Path, Count: c.Count}
	}

	p.Blank()
	p.PrintChangeSummary(title, changes, unit)
	p.Info("Files processed: %d", summary.Scanned)
	logger.Info("rewrite finished",
		zap.String("title", title),
		zap.Int("files", summary.Scanned),
		zap.Int("changed", len(summary.Changes)),
		zap.Int(unit, summary.Total()),
		zap.Bool("dry_run", dryRun))
	if dryRun && len(changes) > 0 {
		p.Warn("Dry run: no files were written")
	}

	if len(summary.Failures) > 0 {
		for _, f := range summary.Failures {
			p.Fail("%v", f)
		}
		return fmt.Errorf("%d file(s) could not be processed", len(summary.Failures))
	}
	return nil
}
