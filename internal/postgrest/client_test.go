package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "service-key"

func TestNewClient(t *testing.T) {
	client, err := NewClient("https://abc.supabase.co/", testKey)
	require.NoError(t, err)
	assert.Equal(t, "https://abc.supabase.co", client.BaseURL())
}

func TestNewClient_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		key     string
	}{
		{name: "bad scheme", baseURL: "ftp://abc.supabase.co", key: testKey},
		{name: "no host", baseURL: "https://", key: testKey},
		{name: "missing key", baseURL: "https://abc.supabase.co", key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.baseURL, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestQueryEncode(t *testing.T) {
	q := NewQuery().Eq("column_name", "expires_at").Eq("table_schema", "public").
		Select("table_name", "column_name", "data_type")
	assert.Equal(t,
		"column_name=eq.expires_at&table_schema=eq.public&select=table_name,column_name,data_type",
		q.Encode())

	assert.Equal(t, "id=not.is.null", NewQuery().NotIs("id", "null").Encode())
	assert.Equal(t, "select=*&limit=1", NewQuery().Select("*").Limit(1).Encode())
	assert.Equal(t, "user_id=eq.ricks_@live.nl", NewQuery().Eq("user_id", "ricks_@live.nl").Encode())
	assert.Equal(t, "", (*Query)(nil).Encode())
}

func TestClient_Select(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/trusted_devices", r.URL.Path)
		assert.Equal(t, "select=id,user_id", r.URL.RawQuery)
		assert.Equal(t, testKey, r.Header.Get("apikey"))
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "1", "user_id": "u1"},
			{"id": "2", "user_id": "u1"},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, testKey)
	require.NoError(t, err)

	rows, err := client.Select(context.Background(), "trusted_devices", NewQuery().Select("id", "user_id"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "u1", rows[0]["user_id"])
}

func TestClient_Select_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"relation does not exist"}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, testKey)
	require.NoError(t, err)

	_, err = client.Select(context.Background(), "missing", nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "relation does not exist")
}

func TestClient_Select_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))
	defer server.Close()

	client, err := NewClient(server.URL, testKey)
	require.NoError(t, err)

	_, err = client.Select(context.Background(), "t", nil)
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestClient_Select_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(url, testKey)
	require.NoError(t, err)

	_, err = client.Select(context.Background(), "t", nil)
	var reqErr *RequestError
	assert.True(t, errors.As(err, &reqErr))
}

func TestClient_Delete(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "id=not.is.null", r.URL.RawQuery)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, testKey)
	require.NoError(t, err)

	err = client.Delete(context.Background(), "trusted_devices", NewQuery().NotIs("id", "null"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_Delete_RequiresFilter(t *testing.T) {
	client, err := NewClient("https://abc.supabase.co", testKey)
	require.NoError(t, err)

	err = client.Delete(context.Background(), "trusted_devices", NewQuery())
	assert.Error(t, err)
}

func TestClient_RPC(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/rpc/check_2fa_session", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var params map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Nil(t, params["p_session_token"])

		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"42702","message":"column reference \"expires_at\" is ambiguous"}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, testKey)
	require.NoError(t, err)

	resp, err := client.RPC(context.Background(), "check_2fa_session", map[string]any{
		"p_user_id":       "00000000-0000-0000-0000-000000000000",
		"p_session_token": nil,
	})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "ambiguous")
}
