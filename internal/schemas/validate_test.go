package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"count": {"type": "integer"}
	}
}`

func TestValidateDocument_Valid(t *testing.T) {
	doc := map[string]any{"name": "rules", "count": 3}

	err := ValidateDocument("test", []byte(testSchema), doc)
	assert.NoError(t, err)
}

func TestValidateDocument_MissingField(t *testing.T) {
	doc := map[string]any{"count": 3}

	err := ValidateDocument("test", []byte(testSchema), doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateDocument_WrongType(t *testing.T) {
	doc := map[string]any{"name": 7}

	err := ValidateDocument("test", []byte(testSchema), doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidateDocument_BadSchema(t *testing.T) {
	err := ValidateDocument("broken", []byte(`{ not json`), map[string]any{})
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "broken", loadErr.Path)
}
