package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded in order; earlier files win because godotenv never
// overrides a variable that is already set.
var DefaultEnvFiles = []string{".env.local", ".env"}

// LoadEnv loads the given dotenv files into the process environment, skipping
// files that do not exist.
func LoadEnv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}

	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return loaded, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}

// FromEnv reads configuration from environment variables.
// SUPABASE_URL falls back to NEXT_PUBLIC_SUPABASE_URL, and SUPABASE_ANON_KEY to
// NEXT_PUBLIC_SUPABASE_ANON_KEY, matching the web application's variable names.
func FromEnv() Config {
	cfg := Config{
		SupabaseURL:   firstEnv("SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"),
		ServiceKey:    firstEnv("SUPABASE_SERVICE_ROLE_KEY"),
		AnonKey:       firstEnv("SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"),
		DatabaseURL:   firstEnv("DATABASE_URL"),
		ComponentsDir: firstEnv("COMPONENTS_DIR"),
	}
	if exclude := firstEnv("COMPONENTS_EXCLUDE"); exclude != "" {
		cfg.Exclude = splitList(exclude)
	}
	return cfg
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
