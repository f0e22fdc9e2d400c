package purge

import (
	"context"
	"fmt"

	"github.com/jonathan/wallet-maint/internal/observability"
	"github.com/jonathan/wallet-maint/internal/postgrest"
	"go.uber.org/zap"
)

// Options controls a purge run.
type Options struct {
	// DryRun stops after counting.
	DryRun bool
	Logger *zap.Logger
}

// Result describes what a purge did.
type Result struct {
	Table     string
	Count     int
	Users     int
	Deleted   bool
	Remaining int  // rows seen by the verification read
	Verified  bool // the verification read succeeded
}

// Run deletes every row of the store's table in four steps: count the rows, ask for
// confirmation, delete in one request, and count again. An empty table ends the run
// successfully before any prompt. A declined confirmation returns ErrAborted. Rows left
// after the delete, or a failed verification read, are reported as warnings.
//
// The steps are not transactional; rows written concurrently can make the counts
// disagree.
func Run(ctx context.Context, store Store, confirmer Confirmer, p *observability.Printer, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	table := store.Table()
	result := &Result{Table: table}

	p.Section("Step 1: Counting rows in " + table)
	rows, err := store.List(ctx)
	if err != nil {
		p.Fail("Error counting rows: %v", err)
		return result, &StepError{Step: "count", Table: table, Cause: err}
	}
	result.Count = len(rows)
	result.Users = distinctUsers(rows)
	if result.Users > 0 {
		p.OK("Found %d rows from %d users", result.Count, result.Users)
	} else {
		p.OK("Found %d rows", result.Count)
	}
	logger.Debug("counted rows", zap.String("table", table), zap.Int("rows", result.Count), zap.Int("users", result.Users))

	if result.Count == 0 {
		p.OK("Nothing to delete; %s is already empty", table)
		return result, nil
	}
	if opts.DryRun {
		p.Info("Dry run: %d rows would be deleted", result.Count)
		return result, nil
	}

	p.Blank()
	p.Warn("WARNING: About to delete %d rows from %s!", result.Count, table)
	ok, err := confirmer.Confirm(fmt.Sprintf("Type '%s' to confirm: ", ConfirmWord))
	if err != nil {
		return result, &StepError{Step: "confirm", Table: table, Cause: err}
	}
	if !ok {
		p.Fail("Aborted. No rows were deleted.")
		return result, ErrAborted
	}

	p.Section(fmt.Sprintf("Step 2: Deleting %d rows", result.Count))
	if err := store.DeleteAll(ctx); err != nil {
		p.Fail("Error deleting rows: %v", err)
		return result, &StepError{Step: "delete", Table: table, Cause: err}
	}
	result.Deleted = true
	p.OK("Deleted all rows")
	logger.Info("deleted rows", zap.String("table", table), zap.Int("rows", result.Count))

	p.Section("Step 3: Verifying deletion")
	rows, err = store.List(ctx)
	if err != nil {
		p.Warn("Could not verify: %v", err)
		logger.Warn("verification read failed", zap.String("table", table), zap.Error(err))
		return result, nil
	}
	result.Verified = true
	result.Remaining = len(rows)
	if result.Remaining == 0 {
		p.OK("Verification successful: 0 rows remaining")
	} else {
		p.Warn("Warning: %d rows still exist", result.Remaining)
	}

	return result, nil
}

// distinctUsers counts the distinct non-null user_id values; rows without one are not
// attributed to any user.
func distinctUsers(rows []postgrest.Row) int {
	seen := make(map[string]bool)
	for _, r := range rows {
		v, ok := r["user_id"]
		if !ok || v == nil {
			continue
		}
		seen[fmt.Sprint(v)] = true
	}
	return len(seen)
}
