package probe

import (
	"strings"

	"github.com/jonathan/wallet-maint/internal/observability"
)

// Print writes the migration check result.
func (r *MigrationResult) Print(p *observability.Printer) {
	p.Section("Migration " + r.Check.Value)
	switch r.Outcome {
	case Found:
		p.OK("Migration %s is applied (%s.%s)", r.Check.Value, r.Check.Table, r.Check.Column)
		p.JSON("  ", r.Rows)
	case NotFound:
		p.Fail("Migration %s has not been applied", r.Check.Value)
	case Failed:
		printFailure(p, "Could not read "+r.Check.Table, r.Step)
	}
}

// Print writes the three inspection steps.
func (r *InspectReport) Print(p *observability.Printer) {
	p.Section("1. Tables with column " + r.Options.Column)
	switch r.Columns.Outcome {
	case Found:
		for _, c := range r.ColumnTable {
			p.Info("%s.%s (%s)", c.Table, c.Column, c.DataType)
		}
		if len(r.ColumnTable) > 1 {
			p.Warn("%d tables share %s; unqualified references in joins are ambiguous", len(r.ColumnTable), r.Options.Column)
		}
	case NotFound:
		p.Info("No public table has a column named %s", r.Options.Column)
	case Failed:
		printFailure(p, "Could not query information_schema.columns", r.Columns)
	}

	p.Section("2. Table " + r.Options.Table)
	switch r.Table.Outcome {
	case Found:
		p.OK("Table is accessible")
		p.Info("Columns: %s", strings.Join(r.SampleKeys, ", "))
	case NotFound:
		p.OK("Table is accessible but empty")
	case Failed:
		printFailure(p, "Table is not accessible", r.Table)
	}

	p.Section("3. Calling " + r.Options.RPC)
	switch {
	case r.RPCSkipped:
		p.Info("Skipped (no REST endpoint configured)")
	case r.RPC.Outcome == Found:
		p.Fail("Confirmed: %s fails with an ambiguous column reference", r.Options.RPC)
		p.Info("Status %d: %s", r.RPC.StatusCode, r.RPC.Body)
	case r.RPC.StatusCode >= 200 && r.RPC.StatusCode < 300:
		p.OK("%s returned status %d", r.Options.RPC, r.RPC.StatusCode)
		p.Info("%s", r.RPC.Body)
	default:
		p.Warn("%s failed with status %d, not an ambiguity error", r.Options.RPC, r.RPC.StatusCode)
		p.Info("%s", r.RPC.Body)
	}
}

// Print writes the required-columns result.
func (r *ColumnReport) Print(p *observability.Printer) {
	p.Section("Columns of " + r.Table)
	switch {
	case r.Outcome == Failed:
		printFailure(p, "Could not read "+r.Table, r.Step)
		return
	case r.Empty:
		p.OK("Table exists but is empty; columns cannot be checked")
		return
	}

	p.OK("Table exists")
	p.Info("Columns: %s", strings.Join(r.Keys, ", "))
	for _, c := range r.Present {
		p.OK("%s", c)
	}
	for _, c := range r.Missing {
		p.Fail("%s MISSING", c)
	}
	if len(r.Missing) > 0 {
		p.Warn("%d required column(s) missing; the migration has probably not been run", len(r.Missing))
	}
}

// PrintUserIDAudits writes one block per audited table.
func PrintUserIDAudits(p *observability.Printer, audits []*UserIDAudit) {
	for _, a := range audits {
		p.Section(strings.ToUpper(a.Table) + " USER_IDS")
		if a.Outcome == Failed {
			printFailure(p, "Could not read "+a.Table, a.Step)
			continue
		}
		p.Info("Total rows: %d", a.Total)
		p.Info("UUID format: %d", a.UUID)
		p.Info("Email format: %d", a.Email)
		if a.Other > 0 {
			p.Info("Other format: %d", a.Other)
		}
		if a.Null > 0 {
			p.Info("Null: %d", a.Null)
		}
		p.PrintList("  Non-UUID samples:", a.Samples)
	}
}

func printFailure(p *observability.Printer, what string, s Step) {
	p.Fail("%s: %s", what, s.Reason())
	if s.Body != "" {
		p.Info("%s", s.Body)
	}
}
