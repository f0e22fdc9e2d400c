package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "anon")
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("COMPONENTS_DIR", "components")
	t.Setenv("COMPONENTS_EXCLUDE", "Dashboard.tsx, SendModal.tsx,")

	cfg := FromEnv()

	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "service", cfg.ServiceKey)
	assert.Equal(t, "anon", cfg.AnonKey)
	assert.Equal(t, "postgres://localhost/db", cfg.DatabaseURL)
	assert.Equal(t, "components", cfg.ComponentsDir)
	assert.Equal(t, []string{"Dashboard.tsx", "SendModal.tsx"}, cfg.Exclude)
}

func TestFromEnv_PrefersServerName(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://server.supabase.co")
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "https://public.supabase.co")

	cfg := FromEnv()

	assert.Equal(t, "https://server.supabase.co", cfg.SupabaseURL)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("WALLET_MAINT_TEST_VAR=local\n"), 0644))
	require.NoError(t, os.WriteFile(shared, []byte("WALLET_MAINT_TEST_VAR=shared\nWALLET_MAINT_TEST_ONLY_SHARED=yes\n"), 0644))

	t.Setenv("WALLET_MAINT_TEST_VAR", "")
	t.Setenv("WALLET_MAINT_TEST_ONLY_SHARED", "")
	require.NoError(t, os.Unsetenv("WALLET_MAINT_TEST_VAR"))
	require.NoError(t, os.Unsetenv("WALLET_MAINT_TEST_ONLY_SHARED"))

	loaded, err := LoadEnv(local, filepath.Join(dir, "missing.env"), shared)
	require.NoError(t, err)

	assert.Equal(t, []string{local, shared}, loaded)
	assert.Equal(t, "local", os.Getenv("WALLET_MAINT_TEST_VAR"))
	assert.Equal(t, "yes", os.Getenv("WALLET_MAINT_TEST_ONLY_SHARED"))
}
