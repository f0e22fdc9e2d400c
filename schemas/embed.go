// Package schemas holds the JSON Schemas for user-supplied files.
package schemas

import _ "embed"

// Rules is the schema of a markup rewrite rule file.
//
//go:embed rules.schema.json
var Rules []byte
