package db

import "time"

// MigrationsTable is where the hosted platform's CLI records applied migrations.
const MigrationsTable = "supabase_migrations.schema_migrations"

// Migration represents an applied schema migration record
type Migration struct {
	Version    string `json:"version"`
	Name       string `json:"name,omitempty"`
	Statements int    `json:"statements"`
}

// AppliedAt parses the timestamp-style version (YYYYMMDDHHMMSS).
// Returns false for versions that are not timestamps.
func (m Migration) AppliedAt() (time.Time, bool) {
	t, err := time.Parse("20060102150405", m.Version)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
