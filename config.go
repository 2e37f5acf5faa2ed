// FILE: lixenwraith/confstore/config.go
package confstore

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// DefaultFileMode is applied to every saved config file.
	DefaultFileMode os.FileMode = 0644

	// MaxDepth bounds the nesting of arrays and objects accepted on load.
	MaxDepth = 512
)

// Store loads and saves documents named <name><ext> inside a single directory.
// A Store holds no document state between calls and is safe for concurrent use.
type Store struct {
	dir           string
	codec         Codec
	logger        *zap.Logger
	fileMode      os.FileMode
	createMissing bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCodec selects the on-disk format. JSON is the default.
func WithCodec(c Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithCreateMissing makes Load create an empty document when the file does
// not exist instead of failing with ErrFileMissing.
func WithCreateMissing(create bool) Option {
	return func(s *Store) {
		s.createMissing = create
	}
}

// WithFileMode sets the permissions of saved files.
func WithFileMode(mode os.FileMode) Option {
	return func(s *Store) {
		s.fileMode = mode
	}
}

// New creates a Store rooted at dir. The directory is not checked or created
// here; Load and Save fail with ErrDirectoryMissing while it is absent.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:      filepath.Clean(dir),
		codec:    JSON,
		logger:   zap.NewNop(),
		fileMode: DefaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the config directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path backing the named document.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+s.codec.Ext())
}

// Exists reports whether the named document exists on disk.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// checkDir verifies the config directory exists.
func (s *Store) checkDir(op string) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fileError(op, s.dir, ErrDirectoryMissing, err)
	}
	if !info.IsDir() {
		return fileError(op, s.dir, ErrDirectoryMissing, nil)
	}
	return nil
}
