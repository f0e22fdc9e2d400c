// Command list_migrations prints every migration recorded in the migration history
// table, oldest first.
//
// Usage:
//
//	go run cmd/tools/list_migrations/main.go
//
// Requires DATABASE_URL environment variable to be set (.env.local and .env are read).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/wallet-maint/internal/config"
	"github.com/jonathan/wallet-maint/internal/db"
)

func main() {
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	fmt.Println("=== Applied Migrations ===")
	fmt.Println()

	migrations, err := database.ListMigrations(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	if len(migrations) == 0 {
		fmt.Printf("No migrations recorded in %s.\n", db.MigrationsTable)
		return
	}

	for _, m := range migrations {
		when := "          -         "
		if at, ok := m.AppliedAt(); ok {
			when = at.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("✓ %-16s %s  %-40s (%d statements)\n", m.Version, when, m.Name, m.Statements)
	}

	fmt.Println()
	fmt.Printf("Total: %d migrations\n", len(migrations))
}
