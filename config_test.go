// FILE: lixenwraith/confstore/config_test.go
package confstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// TestStoreCreation tests various store creation patterns
func TestStoreCreation(t *testing.T) {
	t.Run("NewWithDefaultOptions", func(t *testing.T) {
		store := New("/etc/app/../app")
		require.NotNil(t, store)
		assert.Equal(t, "/etc/app", store.Dir())
		assert.Equal(t, JSON, store.codec)
		assert.Equal(t, DefaultFileMode, store.fileMode)
		assert.False(t, store.createMissing)
		assert.NotNil(t, store.logger)
	})

	t.Run("NewWithCustomOptions", func(t *testing.T) {
		store := New(t.TempDir(),
			WithCodec(TOML),
			WithFileMode(0600),
			WithCreateMissing(true),
			WithLogger(zaptest.NewLogger(t)),
		)
		assert.Equal(t, TOML, store.codec)
		assert.Equal(t, os.FileMode(0600), store.fileMode)
		assert.True(t, store.createMissing)
	})

	t.Run("NilOptionsKeepDefaults", func(t *testing.T) {
		store := New(t.TempDir(), WithCodec(nil), WithLogger(nil))
		assert.Equal(t, JSON, store.codec)
		assert.NotNil(t, store.logger)
	})
}

// TestStorePaths tests name to path mapping and existence checks
func TestStorePaths(t *testing.T) {
	tmpDir := t.TempDir()
	store := New(tmpDir)

	tests := []struct {
		name string
		want string
	}{
		{"app", filepath.Join(tmpDir, "app.json")},
		{"app.prod", filepath.Join(tmpDir, "app.prod.json")},
		{"nested/app", filepath.Join(tmpDir, "nested", "app.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Path(tt.name))
		})
	}

	t.Run("Exists", func(t *testing.T) {
		assert.False(t, store.Exists("app"))
		require.NoError(t, store.Save("app", Document{"k": "v"}))
		assert.True(t, store.Exists("app"))

		require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "dir.json"), 0755))
		assert.False(t, store.Exists("dir"), "directories are not documents")
	})
}

// TestConcurrentStores tests independent stores sharing one directory
func TestConcurrentStores(t *testing.T) {
	tmpDir := t.TempDir()
	names := []string{"alpha", "beta", "gamma", "delta"}

	var wg sync.WaitGroup
	errs := make(chan error, len(names)*10)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			store := New(tmpDir)
			for i := 0; i < 10; i++ {
				if err := store.Save(name, Document{"name": name, "i": int64(i)}); err != nil {
					errs <- err
					return
				}
			}
		}(name)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	store := New(tmpDir)
	for _, name := range names {
		doc, err := store.Load(name)
		require.NoError(t, err)
		assert.Equal(t, Document{"name": name, "i": int64(9)}, doc)
	}
	tempFiles, err := filepath.Glob(filepath.Join(tmpDir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, tempFiles)
}
