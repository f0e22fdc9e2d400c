// Package db provides direct PostgreSQL access for probes that bypass the REST surface.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Condition is a single WHERE predicate on a column. Operator is one of
// eq, neq, is or not.is, mirroring the REST filter operators.
type Condition struct {
	Column   string
	Operator string
	Value    string
}

// SelectRows returns every row of table matching all conditions as JSON objects.
// table may be schema-qualified ("supabase_migrations.schema_migrations").
func (db *DB) SelectRows(ctx context.Context, table string, conds []Condition, limit int) ([]map[string]any, error) {
	query, args, err := buildSelect(table, conds, limit)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowTo[map[string]any])
	if err != nil {
		return nil, fmt.Errorf("failed to scan rows from %s: %w", table, err)
	}
	return result, nil
}

// buildSelect renders a parameterised SELECT returning each row as jsonb.
func buildSelect(table string, conds []Condition, limit int) (string, []any, error) {
	ident := pgx.Identifier(strings.Split(table, "."))
	if len(ident) == 0 || len(ident) > 2 {
		return "", nil, fmt.Errorf("invalid table name %q", table)
	}

	var sb strings.Builder
	sb.WriteString("SELECT to_jsonb(t) FROM ")
	sb.WriteString(ident.Sanitize())
	sb.WriteString(" t")

	var args []any
	for i, c := range conds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		col := "t." + pgx.Identifier{c.Column}.Sanitize()

		switch c.Operator {
		case "eq":
			args = append(args, c.Value)
			fmt.Fprintf(&sb, "%s::text = $%d", col, len(args))
		case "neq":
			args = append(args, c.Value)
			fmt.Fprintf(&sb, "%s::text <> $%d", col, len(args))
		case "is", "not.is":
			keyword, err := isKeyword(c.Value)
			if err != nil {
				return "", nil, err
			}
			if c.Operator == "is" {
				fmt.Fprintf(&sb, "%s IS %s", col, keyword)
			} else {
				fmt.Fprintf(&sb, "%s IS NOT %s", col, keyword)
			}
		default:
			return "", nil, fmt.Errorf("unsupported operator %q for direct query", c.Operator)
		}
	}

	if limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", limit)
	}
	return sb.String(), args, nil
}

func isKeyword(v string) (string, error) {
	switch strings.ToLower(v) {
	case "null":
		return "NULL", nil
	case "true":
		return "TRUE", nil
	case "false":
		return "FALSE", nil
	}
	return "", fmt.Errorf("unsupported IS value %q", v)
}
