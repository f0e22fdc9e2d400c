package main

import (
	"fmt"

	"github.com/jonathan/wallet-maint/internal/probe"
	"github.com/spf13/cobra"
)

var auditUserIDsCmd = &cobra.Command{
	Use:   "audit-user-ids",
	Short: "Count user_id values stored as UUIDs versus email addresses",
	RunE:  runAuditUserIDs,
}

var auditTables []string

func init() {
	auditUserIDsCmd.Flags().StringSliceVar(&auditTables, "tables", []string{"address_book", "wallets"}, "Tables to audit")

	rootCmd.AddCommand(auditUserIDsCmd)
}

func runAuditUserIDs(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)

	client, err := restClient(p, false)
	if err != nil {
		return err
	}

	audits, err := probe.AuditUserIDs(cmd.Context(), probe.NewRESTSource(client), auditTables)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	probe.PrintUserIDAudits(p, audits)

	failed := 0
	for _, a := range audits {
		if a.Outcome == probe.Failed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d table(s) could not be read", failed)
	}
	return nil
}
