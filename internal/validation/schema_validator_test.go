package validation

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plotSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"hectares": {"type": "number", "exclusiveMinimum": 0}
	},
	"required": ["name"]
}`

func newTestValidator() SchemaValidator {
	return NewSchemaValidator(fstest.MapFS{
		"plot.schema.json":   {Data: []byte(plotSchema)},
		"broken.schema.json": {Data: []byte(`{"type": `)},
	})
}

func TestSchemaValidator_ValidateJSON(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name     string
		data     string
		errorMsg string
	}{
		{name: "valid", data: `{"name": "Blok A", "hectares": 1.5}`},
		{name: "optional field omitted", data: `{"name": "Blok B"}`},
		{name: "missing required", data: `{"hectares": 2}`, errorMsg: "required"},
		{name: "wrong type", data: `{"name": "Blok C", "hectares": "dua"}`, errorMsg: "/hectares"},
		{name: "unknown key", data: `{"name": "Blok D", "hektar": 2}`, errorMsg: "additionalProperties"},
		{name: "not json", data: `{`, errorMsg: "parse JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateJSON([]byte(tt.data), "plot.schema.json")
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ValidateYAML(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateYAML([]byte("name: Blok A\nhectares: 3\n"), "plot.schema.json"))

	err := v.ValidateYAML([]byte("name: Blok A\nhectares: 0\n"), "plot.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclusiveMinimum")

	err = v.ValidateYAML([]byte("name: [unclosed"), "plot.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse YAML")
}

func TestSchemaValidator_SchemaErrors(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateJSON([]byte(`{}`), "missing.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema file")

	err = v.ValidateJSON([]byte(`{}`), "broken.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schema JSON")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := newTestValidator().(*validator)

	require.NoError(t, v.ValidateJSON([]byte(`{"name": "x"}`), "plot.schema.json"))
	first := v.schemas["plot.schema.json"]
	require.NotNil(t, first)

	require.NoError(t, v.ValidateJSON([]byte(`{"name": "y"}`), "plot.schema.json"))
	assert.Same(t, first, v.schemas["plot.schema.json"])
}
