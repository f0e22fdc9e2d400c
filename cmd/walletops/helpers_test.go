package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// executeCommand runs the root command in-process with fresh flag values and only the
// given connection variables set, and returns everything it printed.
func executeCommand(t *testing.T, env map[string]string, stdin string, args ...string) (string, error) {
	t.Helper()

	for _, key := range []string{
		"SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL",
		"SUPABASE_SERVICE_ROLE_KEY",
		"SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY",
		"DATABASE_URL", "COMPONENTS_DIR", "COMPONENTS_EXCLUDE",
	} {
		t.Setenv(key, "")
	}
	for key, value := range env {
		t.Setenv(key, value)
	}

	resetFlags(rootCmd)
	newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			var values []string
			if def := strings.Trim(f.DefValue, "[]"); def != "" {
				values = strings.Split(def, ",")
			}
			_ = sv.Replace(values)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// signedKey returns a project key with the given role and expiry.
func signedKey(t *testing.T, role, ref string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":  "supabase",
		"ref":  ref,
		"role": role,
		"iat":  time.Now().Add(-time.Hour).Unix(),
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// fakeBackend serves the REST surface from a handler and returns its base URL.
func fakeBackend(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}
