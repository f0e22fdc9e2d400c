package probe

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ColumnReport lists which required columns a table exposes, judged from one sample row.
type ColumnReport struct {
	Table string
	Step
	Empty   bool // the table exists but has no row to judge from
	Present []string
	Missing []string
	Keys    []string
}

// RequiredColumns reads one row of table and reports which of columns it carries. An
// empty table is Found with Empty set, since its columns cannot be seen over REST.
func RequiredColumns(ctx context.Context, src Source, table string, columns []string) (*ColumnReport, error) {
	report := &ColumnReport{Table: table}

	rows, err := src.Rows(ctx, Request{Table: table, Columns: []string{"*"}, Limit: 1})
	if err != nil {
		if report.Step, err = classify(err); err != nil {
			return nil, err
		}
		return report, nil
	}

	report.Outcome = Found
	if len(rows) == 0 {
		report.Empty = true
		return report, nil
	}

	report.Keys = keys(rows[0])
	for _, c := range columns {
		if _, ok := rows[0][c]; ok {
			report.Present = append(report.Present, c)
		} else {
			report.Missing = append(report.Missing, c)
		}
	}
	return report, nil
}

// Complete reports whether every required column was seen.
func (r *ColumnReport) Complete() bool {
	return r.Outcome == Found && !r.Empty && len(r.Missing) == 0
}

// IDFormat is the shape of a user_id value.
type IDFormat int

const (
	FormatUUID IDFormat = iota
	FormatEmail
	FormatOther
	FormatNull
)

// ClassifyUserID decides whether a user_id holds a UUID, an email address or something
// else.
func ClassifyUserID(v any) IDFormat {
	if v == nil {
		return FormatNull
	}
	s, ok := v.(string)
	if !ok {
		return FormatOther
	}
	if _, err := uuid.Parse(s); err == nil && len(s) == 36 {
		return FormatUUID
	}
	if strings.Contains(s, "@") {
		return FormatEmail
	}
	return FormatOther
}

// UserIDAudit counts user_id formats in one table.
type UserIDAudit struct {
	Table string
	Step
	Total   int
	UUID    int
	Email   int
	Other   int
	Null    int
	Samples []string // distinct non-UUID values, first seen first
}

// maxSamples bounds the non-UUID values kept per table.
const maxSamples = 5

// AuditUserIDs counts how user_id values are stored in each table. A table whose read
// is rejected is reported as Failed and the audit continues.
func AuditUserIDs(ctx context.Context, src Source, tables []string) ([]*UserIDAudit, error) {
	var audits []*UserIDAudit
	for _, table := range tables {
		audit := &UserIDAudit{Table: table}
		audits = append(audits, audit)

		rows, err := src.Rows(ctx, Request{Table: table, Columns: []string{"user_id"}})
		if err != nil {
			if audit.Step, err = classify(err); err != nil {
				return nil, err
			}
			continue
		}

		audit.Outcome = Found
		seen := make(map[string]bool)
		for _, r := range rows {
			audit.Total++
			v := r["user_id"]
			switch ClassifyUserID(v) {
			case FormatUUID:
				audit.UUID++
				continue
			case FormatEmail:
				audit.Email++
			case FormatOther:
				audit.Other++
			case FormatNull:
				audit.Null++
				continue
			}

			s := stringField(r, "user_id")
			if !seen[s] && len(audit.Samples) < maxSamples {
				seen[s] = true
				audit.Samples = append(audit.Samples, s)
			}
		}
	}
	return audits, nil
}
