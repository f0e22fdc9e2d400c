// Package probe classifies the remote database state for the read-only diagnostics.
package probe

import (
	"context"

	"github.com/jonathan/wallet-maint/internal/db"
	"github.com/jonathan/wallet-maint/internal/postgrest"
)

// Request describes one read: the rows of Table matching every filter.
type Request struct {
	Table   string
	Filters []postgrest.Filter
	Columns []string
	Limit   int
}

// Source answers row reads. A non-2xx backend response surfaces as *postgrest.StatusError.
type Source interface {
	Rows(ctx context.Context, req Request) ([]postgrest.Row, error)
}

// Selecter is the part of the REST client a RESTSource needs.
type Selecter interface {
	Select(ctx context.Context, table string, q *postgrest.Query) ([]postgrest.Row, error)
}

// RESTSource reads through the REST surface.
type RESTSource struct {
	client Selecter
}

// NewRESTSource creates a Source backed by a REST client.
func NewRESTSource(client Selecter) *RESTSource {
	return &RESTSource{client: client}
}

// Rows implements Source.
func (s *RESTSource) Rows(ctx context.Context, req Request) ([]postgrest.Row, error) {
	q := postgrest.NewQuery()
	for _, f := range req.Filters {
		q.Where(f.Column, f.Operator, f.Value)
	}
	if len(req.Columns) > 0 {
		q.Select(req.Columns...)
	}
	q.Limit(req.Limit)
	return s.client.Select(ctx, req.Table, q)
}

// RowSelecter is the part of the database handle a DBSource needs.
type RowSelecter interface {
	SelectRows(ctx context.Context, table string, conds []db.Condition, limit int) ([]map[string]any, error)
}

// DBSource reads directly from Postgres, bypassing the REST layer and its schema cache.
type DBSource struct {
	conn RowSelecter
}

// NewDBSource creates a Source backed by a direct database connection.
func NewDBSource(conn RowSelecter) *DBSource {
	return &DBSource{conn: conn}
}

// Rows implements Source. Column selection is applied after the query.
func (s *DBSource) Rows(ctx context.Context, req Request) ([]postgrest.Row, error) {
	conds := make([]db.Condition, len(req.Filters))
	for i, f := range req.Filters {
		conds[i] = db.Condition{Column: f.Column, Operator: f.Operator, Value: f.Value}
	}

	rows, err := s.conn.SelectRows(ctx, req.Table, conds, req.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]postgrest.Row, len(rows))
	for i, r := range rows {
		out[i] = project(r, req.Columns)
	}
	return out, nil
}

func project(row map[string]any, columns []string) postgrest.Row {
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		return row
	}
	out := make(postgrest.Row, len(columns))
	for _, c := range columns {
		if v, ok := row[c]; ok {
			out[c] = v
		}
	}
	return out
}
