package probe

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/jonathan/wallet-maint/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredColumns(t *testing.T) {
	client := restServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/rest/v1/trusted_devices?select=*&limit=1": jsonBody(http.StatusOK, []any{
			map[string]any{"id": "1", "user_id": "u", "device_fingerprint": "f"},
		}),
	})

	report, err := RequiredColumns(context.Background(), NewRESTSource(client), "trusted_devices",
		[]string{"device_fingerprint", "verification_code", "verified_at"})
	require.NoError(t, err)

	assert.Equal(t, Found, report.Outcome)
	assert.Equal(t, []string{"device_fingerprint"}, report.Present)
	assert.Equal(t, []string{"verification_code", "verified_at"}, report.Missing)
	assert.False(t, report.Complete())

	var buf bytes.Buffer
	report.Print(observability.NewPrinter(&buf))
	assert.Contains(t, buf.String(), "✗ verification_code MISSING")
}

func TestRequiredColumns_EmptyAndFailed(t *testing.T) {
	client := restServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/rest/v1/empty?select=*&limit=1":   jsonBody(http.StatusOK, []any{}),
		"/rest/v1/missing?select=*&limit=1": textBody(http.StatusNotFound, `{"code":"PGRST205"}`),
	})
	src := NewRESTSource(client)

	report, err := RequiredColumns(context.Background(), src, "empty", []string{"id"})
	require.NoError(t, err)
	assert.True(t, report.Empty)
	assert.False(t, report.Complete())

	report, err = RequiredColumns(context.Background(), src, "missing", []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, Failed, report.Outcome)
	assert.Contains(t, report.Body, "PGRST205")
}

func TestClassifyUserID(t *testing.T) {
	tests := []struct {
		value any
		want  IDFormat
	}{
		{"4b8e2a4c-2f7e-4d2a-9c1e-0a6b7c8d9e0f", FormatUUID},
		{"ricks_@live.nl", FormatEmail},
		{"legacy-123", FormatOther},
		{"{4b8e2a4c-2f7e-4d2a-9c1e-0a6b7c8d9e0f}", FormatOther},
		{42.0, FormatOther},
		{nil, FormatNull},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyUserID(tt.value), "%v", tt.value)
	}
}

func TestAuditUserIDs(t *testing.T) {
	client := restServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/rest/v1/address_book?select=user_id": jsonBody(http.StatusOK, []any{
			map[string]any{"user_id": "4b8e2a4c-2f7e-4d2a-9c1e-0a6b7c8d9e0f"},
			map[string]any{"user_id": "a@example.com"},
			map[string]any{"user_id": "a@example.com"},
			map[string]any{"user_id": nil},
		}),
		"/rest/v1/wallets?select=user_id": textBody(http.StatusUnauthorized, "no"),
	})

	audits, err := AuditUserIDs(context.Background(), NewRESTSource(client), []string{"address_book", "wallets"})
	require.NoError(t, err)
	require.Len(t, audits, 2)

	book := audits[0]
	assert.Equal(t, 4, book.Total)
	assert.Equal(t, 1, book.UUID)
	assert.Equal(t, 2, book.Email)
	assert.Equal(t, 1, book.Null)
	assert.Equal(t, []string{"a@example.com"}, book.Samples)

	assert.Equal(t, Failed, audits[1].Outcome)
	assert.Equal(t, http.StatusUnauthorized, audits[1].StatusCode)

	var buf bytes.Buffer
	PrintUserIDAudits(observability.NewPrinter(&buf), audits)
	assert.Contains(t, buf.String(), "=== ADDRESS_BOOK USER_IDS ===")
	assert.Contains(t, buf.String(), "Email format: 2")
}
