package main

import (
	"fmt"
	"time"

	"github.com/jonathan/wallet-maint/internal/config"
	"github.com/spf13/cobra"
)

var checkKeyCmd = &cobra.Command{
	Use:   "check-key",
	Short: "Show the claims of the configured API key",
	Long: `Decode the configured service (or anon) key without verifying its signature and
report its role, project and expiry, with a warning when it does not match the
configured project URL.`,
	RunE: runCheckKey,
}

func init() {
	rootCmd.AddCommand(checkKeyCmd)
}

func runCheckKey(cmd *cobra.Command, _ []string) error {
	p := newPrinter(cmd)

	key := cfg.APIKey()
	if key == "" {
		return fmt.Errorf("missing configuration: SUPABASE_SERVICE_ROLE_KEY")
	}

	cred, err := config.InspectCredential(key)
	if err != nil {
		return err
	}

	p.Section("API key")
	p.Info("Role:    %s", cred.Role)
	p.Info("Project: %s", cred.Ref)
	p.Info("Issuer:  %s", cred.Issuer)
	if !cred.IssuedAt.IsZero() {
		p.Info("Issued:  %s", cred.IssuedAt.UTC().Format(time.RFC3339))
	}
	if cred.ExpiresAt.IsZero() {
		p.Info("Expires: never")
	} else {
		p.Info("Expires: %s", cred.ExpiresAt.UTC().Format(time.RFC3339))
	}
	if cfg.SupabaseURL != "" {
		p.Info("URL:     %s", cfg.SupabaseURL)
	}

	warnings := cred.Warnings(cfg.SupabaseURL, time.Now())
	if len(warnings) == 0 {
		p.OK("Key is a current service-role key for this project")
		return nil
	}
	for _, w := range warnings {
		p.Warn("%s", w)
	}
	if cred.Expired(time.Now()) {
		return fmt.Errorf("API key has expired")
	}
	return nil
}
