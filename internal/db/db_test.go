package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	query, args, err := buildSelect(MigrationsTable, []Condition{
		{Column: "version", Operator: "eq", Value: "20240101000000"},
	}, 0)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT to_jsonb(t) FROM "supabase_migrations"."schema_migrations" t WHERE t."version"::text = $1`,
		query)
	assert.Equal(t, []any{"20240101000000"}, args)
}

func TestBuildSelect_MultipleConditions(t *testing.T) {
	query, args, err := buildSelect("trusted_devices", []Condition{
		{Column: "id", Operator: "not.is", Value: "null"},
		{Column: "user_id", Operator: "neq", Value: "x"},
	}, 5)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT to_jsonb(t) FROM "trusted_devices" t WHERE t."id" IS NOT NULL AND t."user_id"::text <> $1 LIMIT 5`,
		query)
	assert.Equal(t, []any{"x"}, args)
}

func TestBuildSelect_Errors(t *testing.T) {
	_, _, err := buildSelect("a.b.c", nil, 0)
	assert.Error(t, err)

	_, _, err = buildSelect("t", []Condition{{Column: "c", Operator: "like", Value: "x"}}, 0)
	assert.Error(t, err)

	_, _, err = buildSelect("t", []Condition{{Column: "c", Operator: "is", Value: "maybe"}}, 0)
	assert.Error(t, err)
}

func TestBuildSelect_QuotesIdentifiers(t *testing.T) {
	query, _, err := buildSelect(`weird"table`, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, `SELECT to_jsonb(t) FROM "weird""table" t`, query)
}

func TestMigrationAppliedAt(t *testing.T) {
	at, ok := Migration{Version: "20241023120000"}.AppliedAt()
	require.True(t, ok)
	assert.Equal(t, 2024, at.Year())
	assert.Equal(t, 12, at.Hour())

	_, ok = Migration{Version: "07"}.AppliedAt()
	assert.False(t, ok)
}
