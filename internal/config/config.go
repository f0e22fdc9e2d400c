// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, the environment, or CLI flags.
type Config struct {
	// Backend
	SupabaseURL string `json:"supabase_url,omitempty" validate:"omitempty,url"`  // Project base URL
	ServiceKey  string `json:"service_key,omitempty"`                            // Service-role credential
	AnonKey     string `json:"anon_key,omitempty"`                               // Fallback when no service key is set
	DatabaseURL string `json:"database_url,omitempty" validate:"omitempty,url"`  // Direct PostgreSQL connection URL

	// Markup rewriting
	ComponentsDir string   `json:"components_dir,omitempty"`                                   // Directory of markup files
	Extensions    []string `json:"extensions,omitempty" validate:"omitempty,dive,startswith=."` // File extensions to process
	Exclude       []string `json:"exclude,omitempty" validate:"omitempty,dive,required"`       // Already-processed files or globs
	RulesFile     string   `json:"rules_file,omitempty"`                                       // YAML rule table overriding the defaults

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print request tracing and debug logs
}

var validate = validator.New()

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ComponentsDir: "components",
		Extensions:    []string{".tsx"},
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since each command requires
// a different subset; see RequireREST, RequireDatabase and RequireDirectory.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config error: invalid fields: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: rules file not found: %s", c.RulesFile)
		}
	}

	return nil
}

// APIKey returns the credential sent to the REST surface.
func (c *Config) APIKey() string {
	if c.ServiceKey != "" {
		return c.ServiceKey
	}
	return c.AnonKey
}

// RequireREST checks that the backend URL and a credential are present.
func (c *Config) RequireREST() error {
	var missing []string
	if c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.APIKey() == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing configuration: %s (set in environment, .env.local, or --config)", strings.Join(missing, ", "))
	}
	return nil
}

// RequireDatabase checks that a direct connection URL is present.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("missing configuration: DATABASE_URL (set in environment, .env.local, or --db-url)")
	}
	return nil
}

// RequireDirectory checks that the components directory exists.
func (c *Config) RequireDirectory() error {
	if c.ComponentsDir == "" {
		return fmt.Errorf("missing configuration: components directory")
	}
	info, err := os.Stat(c.ComponentsDir)
	if err != nil {
		return fmt.Errorf("directory not found: %s", c.ComponentsDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", c.ComponentsDir)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over environment over config file over built-ins.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.SupabaseURL == "" {
		result.SupabaseURL = defaults.SupabaseURL
	}
	if result.ServiceKey == "" {
		result.ServiceKey = defaults.ServiceKey
	}
	if result.AnonKey == "" {
		result.AnonKey = defaults.AnonKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ComponentsDir == "" {
		result.ComponentsDir = defaults.ComponentsDir
	}
	if result.RulesFile == "" {
		result.RulesFile = defaults.RulesFile
	}

	// Slice fields: use default if empty
	if len(result.Extensions) == 0 {
		result.Extensions = defaults.Extensions
	}
	if len(result.Exclude) == 0 {
		result.Exclude = defaults.Exclude
	}

	// Bool fields: either layer can switch verbose on
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
