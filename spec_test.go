package confstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	t.Run("KeepsOrder", func(t *testing.T) {
		spec, err := ParseSpec([]byte(`{
    "zeta": "string",
    "db|database": {"port": "int", "host": "string"},
    "alpha": "bool"
}`))
		require.NoError(t, err)
		require.Len(t, spec, 3)

		assert.Equal(t, []string{"zeta", "db", "alpha"}, spec.Keys())
		assert.Equal(t, Field{Key: "zeta", Want: TypeTag("string")}, spec[0])
		assert.Equal(t, "db|database", spec[1].Key)

		nested, ok := spec[1].Want.(NestedSpec)
		require.True(t, ok)
		assert.Equal(t, []string{"port", "host"}, Spec(nested).Keys())
	})

	t.Run("DrivesValidation", func(t *testing.T) {
		spec, err := ParseSpec([]byte(`{"a": "string", "b": "integer"}`))
		require.NoError(t, err)
		_, err = Validate(spec, Document{"b": "notanint"})
		assert.ErrorIs(t, err, ErrMissingKey)
	})

	t.Run("Invalid", func(t *testing.T) {
		for name, input := range map[string]string{
			"NotObject":     `["a"]`,
			"NumberValue":   `{"a": 1}`,
			"ArrayValue":    `{"a": ["string"]}`,
			"EmptyKey":      `{"|": "string"}`,
			"Malformed":     `{"a": "string"`,
			"Trailing":      `{"a": "string"} {}`,
			"NestedInvalid": `{"a": {"b": true}}`,
		} {
			t.Run(name, func(t *testing.T) {
				_, err := ParseSpec([]byte(input))
				assert.Error(t, err)
			})
		}
	})

	t.Run("UnknownTagDeferred", func(t *testing.T) {
		// Tags are checked during validation, not parsing
		spec, err := ParseSpec([]byte(`{"a": "uuid"}`))
		require.NoError(t, err)
		_, err = Validate(spec, Document{"a": "x"})
		assert.ErrorIs(t, err, ErrUnknownExpectedType)
	})
}
