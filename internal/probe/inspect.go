package probe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/wallet-maint/internal/postgrest"
)

// Caller invokes stored procedures.
type Caller interface {
	RPC(ctx context.Context, fn string, params map[string]any) (*postgrest.Response, error)
}

// InspectOptions names the objects the schema inspection looks at. The defaults target
// the two-factor session check whose join on expires_at is ambiguous.
type InspectOptions struct {
	Column string
	Table  string
	RPC    string
}

// DefaultInspectOptions returns the two-factor session diagnostic.
func DefaultInspectOptions() InspectOptions {
	return InspectOptions{
		Column: "expires_at",
		Table:  "user_2fa_sessions",
		RPC:    "check_2fa_session",
	}
}

// ColumnInfo is one table carrying the inspected column.
type ColumnInfo struct {
	Table    string
	Column   string
	DataType string
}

// InspectReport collects the three inspection steps.
type InspectReport struct {
	Options InspectOptions

	// Tables having the column; Found when at least one does.
	Columns     Step
	ColumnTable []ColumnInfo

	// Accessibility of the table; Found when it returned a sample row.
	Table      Step
	SampleKeys []string

	// Reproduction of the procedure failure; Found when the error mentions an
	// ambiguous reference. Skipped is set when no Caller was given.
	RPC        Step
	RPCSkipped bool
}

// ambiguousMarker is what the backend says about an unqualified column shared by two
// joined tables.
const ambiguousMarker = "ambiguous"

// Inspect runs the schema inspection. Each step is reported independently; a Failed step
// does not stop the next one. Transport failures end the inspection with an error.
func Inspect(ctx context.Context, src Source, caller Caller, opts InspectOptions) (*InspectReport, error) {
	report := &InspectReport{Options: opts}

	rows, err := src.Rows(ctx, Request{
		Table: "information_schema.columns",
		Filters: []postgrest.Filter{
			{Column: "column_name", Operator: "eq", Value: opts.Column},
			{Column: "table_schema", Operator: "eq", Value: "public"},
		},
		Columns: []string{"table_name", "column_name", "data_type"},
	})
	if err != nil {
		if report.Columns, err = classify(err); err != nil {
			return nil, err
		}
	} else {
		for _, r := range rows {
			report.ColumnTable = append(report.ColumnTable, ColumnInfo{
				Table:    stringField(r, "table_name"),
				Column:   stringField(r, "column_name"),
				DataType: stringField(r, "data_type"),
			})
		}
		sort.Slice(report.ColumnTable, func(i, j int) bool {
			return report.ColumnTable[i].Table < report.ColumnTable[j].Table
		})
		if len(report.ColumnTable) > 0 {
			report.Columns.Outcome = Found
		}
	}

	rows, err = src.Rows(ctx, Request{Table: opts.Table, Columns: []string{"*"}, Limit: 1})
	if err != nil {
		if report.Table, err = classify(err); err != nil {
			return nil, err
		}
	} else if len(rows) > 0 {
		report.Table.Outcome = Found
		report.SampleKeys = keys(rows[0])
	}

	if caller == nil {
		report.RPCSkipped = true
		return report, nil
	}

	resp, err := caller.RPC(ctx, opts.RPC, map[string]any{
		"p_user_id":       uuid.Nil.String(),
		"p_session_token": nil,
	})
	if err != nil {
		return nil, err
	}
	report.RPC = Step{StatusCode: resp.StatusCode, Body: resp.Body}
	if strings.Contains(strings.ToLower(resp.Body), ambiguousMarker) {
		report.RPC.Outcome = Found
	}

	return report, nil
}

func stringField(r postgrest.Row, key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func keys(r postgrest.Row) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
