// FILE: lixenwraith/confstore/discovery_test.go
package confstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiscoverDir tests config directory discovery
func TestDiscoverDir(t *testing.T) {
	isolate := func(t *testing.T) string {
		t.Helper()
		root := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "xdg-home"))
		t.Setenv("XDG_CONFIG_DIRS", filepath.Join(root, "xdg-dirs"))
		t.Setenv("TESTAPP_DIR", "")
		return root
	}

	t.Run("Defaults", func(t *testing.T) {
		opts := DefaultDirDiscoveryOptions("testapp")
		assert.Equal(t, "testapp", opts.Name)
		assert.Equal(t, "TESTAPP_DIR", opts.EnvVar)
		assert.True(t, opts.UseXDG)
	})

	t.Run("EnvVarWins", func(t *testing.T) {
		root := isolate(t)
		custom := filepath.Join(root, "custom")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "xdg-home", "testapp"), 0755))
		t.Setenv("TESTAPP_DIR", custom)

		dir, ok := DiscoverDir(DefaultDirDiscoveryOptions("testapp"))
		assert.True(t, ok)
		assert.Equal(t, custom, dir, "explicit directory is returned even if absent")
	})

	t.Run("CustomPathsBeforeXDG", func(t *testing.T) {
		root := isolate(t)
		custom := filepath.Join(root, "custom")
		require.NoError(t, os.MkdirAll(custom, 0755))
		require.NoError(t, os.MkdirAll(filepath.Join(root, "xdg-home", "testapp"), 0755))

		opts := DefaultDirDiscoveryOptions("testapp")
		opts.Paths = []string{filepath.Join(root, "absent"), custom}
		dir, ok := DiscoverDir(opts)
		assert.True(t, ok)
		assert.Equal(t, custom, dir)
	})

	t.Run("XDGConfigHome", func(t *testing.T) {
		root := isolate(t)
		want := filepath.Join(root, "xdg-home", "testapp")
		require.NoError(t, os.MkdirAll(want, 0755))

		dir, ok := DiscoverDir(DefaultDirDiscoveryOptions("testapp"))
		assert.True(t, ok)
		assert.Equal(t, want, dir)
	})

	t.Run("XDGConfigDirs", func(t *testing.T) {
		root := isolate(t)
		want := filepath.Join(root, "xdg-dirs", "testapp")
		require.NoError(t, os.MkdirAll(want, 0755))

		dir, ok := DiscoverDir(DefaultDirDiscoveryOptions("testapp"))
		assert.True(t, ok)
		assert.Equal(t, want, dir)
	})

	t.Run("FilesAreSkipped", func(t *testing.T) {
		root := isolate(t)
		file := filepath.Join(root, "file")
		writeFile(t, file, "{}")

		_, ok := DiscoverDir(DirDiscoveryOptions{Name: "testapp", Paths: []string{file}})
		assert.False(t, ok)
	})

	t.Run("NothingFound", func(t *testing.T) {
		isolate(t)
		dir, ok := DiscoverDir(DefaultDirDiscoveryOptions("testapp-nonexistent"))
		assert.False(t, ok)
		assert.Empty(t, dir)
	})
}
