package main

import (
	"fmt"

	"github.com/jonathan/wallet-maint/internal/db"
	"github.com/jonathan/wallet-maint/internal/probe"
	"github.com/spf13/cobra"
)

var checkMigrationCmd = &cobra.Command{
	Use:   "check-migration",
	Short: "Check whether a database migration has been applied",
	Long: `Look up a migration by version and report whether it has been applied.

By default the lookup goes through the REST surface. With --direct (or --db-url) the
migration history table is read over a direct Postgres connection instead.`,
	Example: `walletops check-migration --version 20251020000000
walletops check-migration --version 20251020000000 --direct --require-applied`,
	RunE: runCheckMigration,
}

var (
	migrationVersion  string
	migrationTable    string
	migrationColumn   string
	migrationDirect   bool
	migrationRequired bool
)

func init() {
	checkMigrationCmd.Flags().StringVar(&migrationVersion, "version", "", "Migration version to look up (required)")
	checkMigrationCmd.Flags().StringVar(&migrationTable, "table", "", "Table recording migrations (default schema_migrations, or "+db.MigrationsTable+" with --direct)")
	checkMigrationCmd.Flags().StringVar(&migrationColumn, "column", probe.DefaultMigrationColumn, "Column holding the version")
	checkMigrationCmd.Flags().BoolVar(&migrationDirect, "direct", false, "Query Postgres directly using DATABASE_URL")
	checkMigrationCmd.Flags().String("db-url", "", "Database URL (overrides DATABASE_URL; implies --direct)")
	checkMigrationCmd.Flags().BoolVar(&migrationRequired, "require-applied", false, "Exit non-zero when the migration has not been applied")
	_ = checkMigrationCmd.MarkFlagRequired("version")

	rootCmd.AddCommand(checkMigrationCmd)
}

func runCheckMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p := newPrinter(cmd)
	direct := migrationDirect || cmd.Flags().Changed("db-url")

	check := probe.MigrationCheck{Table: migrationTable, Column: migrationColumn, Value: migrationVersion}

	var (
		src      probe.Source
		database *db.DB
	)
	if direct {
		var err error
		database, err = connectDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		if check.Table == "" {
			check.Table = db.MigrationsTable
		}
		src = probe.NewDBSource(database)
	} else {
		client, err := restClient(p, false)
		if err != nil {
			return err
		}
		src = probe.NewRESTSource(client)
	}

	result, err := probe.Run(ctx, src, check)
	if err != nil {
		return fmt.Errorf("migration check failed: %w", err)
	}
	result.Print(p)

	if direct && result.Applied() && check.Table == db.MigrationsTable {
		m, err := database.FindMigration(ctx, migrationVersion)
		if err != nil {
			return err
		}
		if m != nil {
			if at, ok := m.AppliedAt(); ok {
				p.Info("Version timestamp: %s", at.Format("2006-01-02 15:04:05"))
			}
			p.Info("Statements: %d", m.Statements)
		}
	}

	switch {
	case result.Outcome == probe.Failed:
		return fmt.Errorf("could not read %s (%s)", check.Table, result.Reason())
	case !result.Applied() && migrationRequired:
		return fmt.Errorf("migration %s has not been applied", migrationVersion)
	}
	return nil
}
