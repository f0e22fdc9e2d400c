// Package purge deletes every row of a table behind a typed confirmation.
package purge

import (
	"context"

	"github.com/jonathan/wallet-maint/internal/postgrest"
)

// Store is the table a purge operates on.
type Store interface {
	// Table names the target for reporting.
	Table() string
	// List returns every row. user_id is read when the table has it.
	List(ctx context.Context) ([]postgrest.Row, error)
	// DeleteAll removes every row in one request.
	DeleteAll(ctx context.Context) error
}

// RESTClient is the part of the REST client a RESTStore needs.
type RESTClient interface {
	Select(ctx context.Context, table string, q *postgrest.Query) ([]postgrest.Row, error)
	Delete(ctx context.Context, table string, q *postgrest.Query) error
}

// RESTStore purges a table through the REST surface.
type RESTStore struct {
	client RESTClient
	table  string
}

// NewRESTStore creates a Store for table.
func NewRESTStore(client RESTClient, table string) *RESTStore {
	return &RESTStore{client: client, table: table}
}

// Table implements Store.
func (s *RESTStore) Table() string {
	return s.table
}

// List implements Store. Every column is read so that tables without user_id can be
// purged too.
func (s *RESTStore) List(ctx context.Context) ([]postgrest.Row, error) {
	return s.client.Select(ctx, s.table, postgrest.NewQuery().Select("*"))
}

// DeleteAll implements Store. The catch-all filter on a non-null primary key matches
// every row; the backend refuses a delete with no filter at all.
func (s *RESTStore) DeleteAll(ctx context.Context) error {
	return s.client.Delete(ctx, s.table, postgrest.NewQuery().NotIs("id", "null"))
}
