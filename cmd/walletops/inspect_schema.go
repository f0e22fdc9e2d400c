package main

import (
	"fmt"

	"github.com/jonathan/wallet-maint/internal/probe"
	"github.com/spf13/cobra"
)

var inspectSchemaCmd = &cobra.Command{
	Use:   "inspect-schema",
	Short: "Diagnose the ambiguous expires_at reference in the two-factor session check",
	Long: `Inspect the schema around the two-factor session check:

  1. list public tables that have the column (expires_at);
  2. read one row of the session table and show its columns;
  3. call the stored procedure with a zero user id and report whether it fails with an
     ambiguous column reference.

With --direct, steps 1 and 2 read Postgres directly; step 3 still needs the REST
endpoint and is skipped without one.`,
	RunE: runInspectSchema,
}

var (
	inspectOpts   = probe.DefaultInspectOptions()
	inspectDirect bool
)

func init() {
	inspectSchemaCmd.Flags().StringVar(&inspectOpts.Column, "column", inspectOpts.Column, "Column to look for across public tables")
	inspectSchemaCmd.Flags().StringVar(&inspectOpts.Table, "table", inspectOpts.Table, "Table to sample")
	inspectSchemaCmd.Flags().StringVar(&inspectOpts.RPC, "rpc", inspectOpts.RPC, "Stored procedure to call")
	inspectSchemaCmd.Flags().BoolVar(&inspectDirect, "direct", false, "Read the schema directly using DATABASE_URL")
	inspectSchemaCmd.Flags().String("db-url", "", "Database URL (overrides DATABASE_URL; implies --direct)")

	rootCmd.AddCommand(inspectSchemaCmd)
}

func runInspectSchema(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p := newPrinter(cmd)
	direct := inspectDirect || cmd.Flags().Changed("db-url")

	p.Banner("Schema inspection: " + inspectOpts.Table)

	var (
		src    probe.Source
		caller probe.Caller
	)
	if direct {
		database, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		src = probe.NewDBSource(database)

		if cfg.RequireREST() == nil {
			client, err := restClient(p, false)
			if err != nil {
				return err
			}
			caller = client
		}
	} else {
		client, err := restClient(p, false)
		if err != nil {
			return err
		}
		src = probe.NewRESTSource(client)
		caller = client
	}

	report, err := probe.Inspect(ctx, src, caller, inspectOpts)
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}
	report.Print(p)

	if report.Columns.Outcome == probe.Failed || report.Table.Outcome == probe.Failed {
		return fmt.Errorf("inspection incomplete: one or more reads were rejected")
	}
	return nil
}
