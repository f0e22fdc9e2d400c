package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonathan/wallet-maint/internal/postgrest"
)

// Outcome classifies a single read.
type Outcome int

const (
	// NotFound means the request succeeded and the condition does not hold.
	NotFound Outcome = iota
	// Found means the request succeeded and the condition holds.
	Found
	// Failed means the backend answered with a non-2xx status.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Step is the classified outcome of one read. A rejected REST read carries the HTTP
// status and body; a rejected direct read carries the SQLSTATE and server message.
type Step struct {
	Outcome    Outcome
	StatusCode int
	SQLState   string
	Body       string
}

// classify turns a read error into a Failed step, or returns it unchanged when it is
// not a backend rejection.
func classify(err error) (Step, error) {
	var statusErr *postgrest.StatusError
	if errors.As(err, &statusErr) {
		return Step{Outcome: Failed, StatusCode: statusErr.StatusCode, Body: statusErr.Body}, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return Step{Outcome: Failed, SQLState: pgErr.Code, Body: pgErr.Message}, nil
	}
	return Step{}, err
}

// Reason describes why a Failed step was rejected.
func (s Step) Reason() string {
	if s.SQLState != "" {
		return "SQLSTATE " + s.SQLState
	}
	return fmt.Sprintf("status %d", s.StatusCode)
}

// MigrationCheck identifies the row recording an applied migration.
type MigrationCheck struct {
	Table  string
	Column string
	Value  string
}

// DefaultMigrationTable and DefaultMigrationColumn locate migrations over REST.
const (
	DefaultMigrationTable  = "schema_migrations"
	DefaultMigrationColumn = "version"
)

// MigrationResult is the outcome of a migration check. Rows echoes the matching
// payload when the migration was found.
type MigrationResult struct {
	Check MigrationCheck
	Step
	Rows []postgrest.Row
}

// Applied reports whether the migration row exists.
func (r *MigrationResult) Applied() bool {
	return r.Outcome == Found
}

// Run issues one read for the migration row and classifies it: an empty result is
// NotFound, any row is Found, and a backend rejection is Failed. Transport failures
// are returned as errors.
func Run(ctx context.Context, src Source, check MigrationCheck) (*MigrationResult, error) {
	if check.Table == "" {
		check.Table = DefaultMigrationTable
	}
	if check.Column == "" {
		check.Column = DefaultMigrationColumn
	}

	result := &MigrationResult{Check: check}

	rows, err := src.Rows(ctx, Request{
		Table:   check.Table,
		Filters: []postgrest.Filter{{Column: check.Column, Operator: "eq", Value: check.Value}},
	})
	if err != nil {
		step, err := classify(err)
		if err != nil {
			return nil, err
		}
		result.Step = step
		return result, nil
	}

	if len(rows) > 0 {
		result.Outcome = Found
		result.Rows = rows
	}
	return result, nil
}
