package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ListMigrations returns every applied migration ordered by version
func (db *DB) ListMigrations(ctx context.Context) ([]Migration, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT version, COALESCE(name, ''), COALESCE(array_length(statements, 1), 0)
		 FROM supabase_migrations.schema_migrations
		 ORDER BY version`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	defer rows.Close()

	var migrations []Migration
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Version, &m.Name, &m.Statements); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		migrations = append(migrations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate migrations: %w", err)
	}

	return migrations, nil
}

// FindMigration returns the migration with the given version, or nil if it has not been applied
func (db *DB) FindMigration(ctx context.Context, version string) (*Migration, error) {
	var m Migration
	err := db.pool.QueryRow(ctx,
		`SELECT version, COALESCE(name, ''), COALESCE(array_length(statements, 1), 0)
		 FROM supabase_migrations.schema_migrations
		 WHERE version = $1`,
		version,
	).Scan(&m.Version, &m.Name, &m.Statements)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get migration %s: %w", version, err)
	}
	return &m, nil
}
