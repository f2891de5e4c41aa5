package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	},
	"required": ["name"],
	"additionalProperties": false
}`

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	require.NoError(t, v.Register("person.schema.json", []byte(personSchema)))

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{name: "valid data", data: `{"name": "John", "age": 30}`},
		{name: "valid data without optional field", data: `{"name": "Jane"}`},
		{name: "missing required field", data: `{"age": 25}`, wantError: true, errorMsg: "required"},
		{name: "wrong type for field", data: `{"name": "John", "age": "thirty"}`, wantError: true, errorMsg: "/age"},
		{name: "below minimum", data: `{"name": "John", "age": -1}`, wantError: true, errorMsg: "minimum"},
		{name: "unknown property", data: `{"name": "John", "x": 1}`, wantError: true, errorMsg: "additionalProperties"},
		{name: "malformed JSON", data: `{name}`, wantError: true, errorMsg: "failed to parse JSON data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), "person.schema.json")
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_Register(t *testing.T) {
	v := NewSchemaValidator()

	t.Run("unregistered schema", func(t *testing.T) {
		err := v.ValidateBytes([]byte(`{}`), "missing.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not registered")
	})

	t.Run("invalid schema JSON", func(t *testing.T) {
		err := v.Register("broken.json", []byte(`{"type":`))
		assert.Error(t, err)
	})

	t.Run("register twice is a no-op", func(t *testing.T) {
		require.NoError(t, v.Register("p.json", []byte(personSchema)))
		require.NoError(t, v.Register("p.json", []byte(`not even json`)))
	})
}
