// FILE: lixenwraith/confstore/convenience_test.go
package confstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDocumentPaths tests dot-path access helpers
func TestDocumentPaths(t *testing.T) {
	doc := Document{
		"server": map[string]any{
			"host": "localhost",
			"tls":  Document{"cert": "/etc/cert.pem"},
		},
		"port": int64(80),
	}

	t.Run("Lookup", func(t *testing.T) {
		v, ok := doc.Lookup("server.host")
		assert.True(t, ok)
		assert.Equal(t, "localhost", v)

		v, ok = doc.Lookup("server.tls.cert")
		assert.True(t, ok)
		assert.Equal(t, "/etc/cert.pem", v)

		_, ok = doc.Lookup("server.missing")
		assert.False(t, ok)

		_, ok = doc.Lookup("port.sub")
		assert.False(t, ok, "cannot descend into a scalar")

		root, ok := doc.Lookup("")
		assert.True(t, ok)
		assert.Equal(t, map[string]any(doc), root)
	})

	t.Run("Set", func(t *testing.T) {
		d := doc.Clone()
		d.Set("server.port", int64(443))
		d.Set("new.deep.key", "v")
		d.Set("port.sub", true) // replaces scalar with mapping

		v, _ := d.Lookup("server.port")
		assert.Equal(t, int64(443), v)
		v, _ = d.Lookup("new.deep.key")
		assert.Equal(t, "v", v)
		v, _ = d.Lookup("port.sub")
		assert.Equal(t, true, v)

		// Existing siblings survive
		v, _ = d.Lookup("server.host")
		assert.Equal(t, "localhost", v)
	})

	t.Run("Delete", func(t *testing.T) {
		d := doc.Clone()
		assert.True(t, d.Delete("server.tls.cert"))
		assert.False(t, d.Delete("server.tls.cert"))
		assert.False(t, d.Delete("nope.key"))
		assert.False(t, d.Delete("port.sub"))
		assert.True(t, d.Delete("port"))
		assert.NotContains(t, d, "port")
	})
}

// TestClone tests deep copies
func TestClone(t *testing.T) {
	original := Document{
		"list":  []any{"a", map[string]any{"k": "v"}},
		"inner": map[string]any{"n": int64(1)},
		"typed": Document{"x": "y"},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone["inner"].(map[string]any)["n"] = int64(2)
	clone["list"].([]any)[1].(map[string]any)["k"] = "changed"
	clone["typed"].(Document)["x"] = "z"

	assert.Equal(t, int64(1), original["inner"].(map[string]any)["n"])
	assert.Equal(t, "v", original["list"].([]any)[1].(map[string]any)["k"])
	assert.Equal(t, "y", original["typed"].(Document)["x"])

	var nilDoc Document
	assert.Nil(t, nilDoc.Clone())
}
