package main

import (
	"github.com/jonathan/wallet-maint/internal/purge"
	"github.com/spf13/cobra"
)

var deleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every row of a table after a typed confirmation",
	Long: `Count the rows of a table, ask for the word DELETE, delete every row in a single
request, and count again.

There is no way to skip the confirmation. The prompt waits for input indefinitely.`,
	Example: `walletops delete-all --table trusted_devices
walletops delete-all --table trusted_devices --dry-run`,
	RunE: runDeleteAll,
}

var (
	deleteTable  string
	deleteDryRun bool
)

func init() {
	deleteAllCmd.Flags().StringVar(&deleteTable, "table", "trusted_devices", "Table to empty")
	deleteAllCmd.Flags().BoolVar(&deleteDryRun, "dry-run", false, "Count rows only")

	rootCmd.AddCommand(deleteAllCmd)
}

func runDeleteAll(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)
	p.Banner("Delete ALL rows: " + deleteTable)

	client, err := restClient(p, true)
	if err != nil {
		return err
	}

	store := purge.NewRESTStore(client, deleteTable)
	confirmer := purge.NewPromptConfirmer(cmd.InOrStdin(), p.Writer())

	result, err := purge.Run(cmd.Context(), store, confirmer, p, purge.Options{
		DryRun: deleteDryRun,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if result.Deleted {
		p.Blank()
		p.OK("Purge of %s complete", deleteTable)
	}
	return nil
}
