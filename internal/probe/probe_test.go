package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/wallet-maint/internal/db"
	"github.com/jonathan/wallet-maint/internal/observability"
	"github.com/jonathan/wallet-maint/internal/postgrest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restServer serves fixed responses keyed by path and raw query.
func restServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *postgrest.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		handler, ok := routes[key]
		if !ok {
			t.Errorf("unexpected request %s %s", r.Method, key)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := postgrest.NewClient(server.URL, "service-key")
	require.NoError(t, err)
	return client
}

func jsonBody(status int, v any) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func textBody(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

const migrationPath = "/rest/v1/schema_migrations?version=eq.20251020000000"

func TestRun_NotFound(t *testing.T) {
	client := restServer(t, map[string]func(http.ResponseWriter, *http.Request){
		migrationPath: jsonBody(http.StatusOK, []any{}),
	})

	result, err := Run(context.Background(), NewRESTSource(client), MigrationCheck{Value: "20251020000000"})
	require.NoError(t, err)

	assert.Equal(t, NotFound, result.Outcome)
	assert.False(t, result.Applied())
	assert.Empty(t, result.Rows)

	var buf bytes.Buffer
	result.Print(observability.NewPrinter(&buf))
	assert.Contains(t, buf.String(), "✗ Migration 20251020000000 has not been applied")
}

func TestRun_Found(t *testing.T) {
	row := map[string]any{"version": "20251020000000", "name": "add_trusted_devices"}
	client := restServer(t, map[string]func(http.ResponseWriter, *http.Request){
		migrationPath: jsonBody(http.StatusOK, []any{row}),
	})

	result, err := Run(context.Background(), NewRESTSource(client), MigrationCheck{Value: "20251020000000"})
	require.NoError(t, err)

	assert.True(t, result.Applied())
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "add_trusted_devices", result.Rows[0]["name"])

	var buf bytes.Buffer
	result.Print(observability.NewPrinter(&buf))
	assert.Contains(t, buf.String(), "✓ Migration 20251020000000 is applied")
	assert.Contains(t, buf.String(), `"name": "add_trusted_devices"`)
}

func TestRun_Failed(t *testing.T) {
	client := restServer(t, map[string]func(http.ResponseWriter, *http.Request){
		migrationPath: textBody(http.StatusNotFound, `{"code":"42P01","message":"relation does not exist"}`),
	})

	result, err := Run(context.Background(), NewRESTSource(client), MigrationCheck{Value: "20251020000000"})
	require.NoError(t, err)

	assert.Equal(t, Failed, result.Outcome)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, result.Body, "relation does not exist")
	assert.Equal(t, "status 404", result.Reason())
}

func TestRun_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := postgrest.NewClient(server.URL, "service-key")
	require.NoError(t, err)

	_, err = Run(context.Background(), NewRESTSource(client), MigrationCheck{Value: "1"})
	require.Error(t, err)

	var reqErr *postgrest.RequestError
	assert.True(t, errors.As(err, &reqErr))
}

type fakeSelecter struct {
	table string
	conds []db.Condition
	limit int
	rows  []map[string]any
	err   error
}

func (f *fakeSelecter) SelectRows(_ context.Context, table string, conds []db.Condition, limit int) ([]map[string]any, error) {
	f.table, f.conds, f.limit = table, conds, limit
	return f.rows, f.err
}

func TestRun_DirectSource(t *testing.T) {
	fake := &fakeSelecter{rows: []map[string]any{{"version": "20251020000000", "statements": []any{"ALTER TABLE"}}}}

	result, err := Run(context.Background(), NewDBSource(fake), MigrationCheck{
		Table: db.MigrationsTable,
		Value: "20251020000000",
	})
	require.NoError(t, err)

	assert.True(t, result.Applied())
	assert.Equal(t, db.MigrationsTable, fake.table)
	assert.Equal(t, []db.Condition{{Column: "version", Operator: "eq", Value: "20251020000000"}}, fake.conds)
}

func TestDBSource_ProjectsColumns(t *testing.T) {
	fake := &fakeSelecter{rows: []map[string]any{{"id": 1.0, "user_id": "u", "secret": "s"}}}

	rows, err := NewDBSource(fake).Rows(context.Background(), Request{Table: "t", Columns: []string{"user_id"}, Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, []postgrest.Row{{"user_id": "u"}}, rows)
	assert.Equal(t, 3, fake.limit)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "found", Found.String())
	assert.Equal(t, "not found", NotFound.String())
	assert.Equal(t, "failed", Failed.String())
}
