package main

import (
	"fmt"

	"github.com/jonathan/wallet-maint/internal/probe"
	"github.com/spf13/cobra"
)

var checkColumnsCmd = &cobra.Command{
	Use:   "check-columns",
	Short: "Check that a table exposes the columns a migration adds",
	Long: `Read one row of a table and report which of the required columns it carries.
An empty table cannot be judged this way and is reported as such.`,
	Example: `walletops check-columns --table trusted_devices --require verification_code,verification_token`,
	RunE:    runCheckColumns,
}

var (
	columnsTable    string
	columnsRequired []string
)

func init() {
	checkColumnsCmd.Flags().StringVar(&columnsTable, "table", "trusted_devices", "Table to check")
	checkColumnsCmd.Flags().StringSliceVar(&columnsRequired, "require", []string{
		"verification_code",
		"verification_code_expires_at",
		"verification_expires_at",
		"verification_token",
	}, "Columns that must exist")

	rootCmd.AddCommand(checkColumnsCmd)
}

func runCheckColumns(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)

	client, err := restClient(p, false)
	if err != nil {
		return err
	}

	report, err := probe.RequiredColumns(cmd.Context(), probe.NewRESTSource(client), columnsTable, columnsRequired)
	if err != nil {
		return fmt.Errorf("column check failed: %w", err)
	}
	report.Print(p)

	switch {
	case report.Outcome == probe.Failed:
		return fmt.Errorf("could not read %s (%s)", columnsTable, report.Reason())
	case report.Empty:
		return nil
	case !report.Complete():
		return fmt.Errorf("%d required column(s) missing from %s", len(report.Missing), columnsTable)
	}
	return nil
}
