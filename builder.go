// File: lixenwraith/confstore/builder.go
package confstore

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Builder provides a fluent interface for building a Store
type Builder struct {
	dir  string
	opts []Option
	err  error
}

// NewBuilder creates a new store builder
func NewBuilder() *Builder {
	return &Builder{
		opts: make([]Option, 0, 4),
	}
}

// WithDir sets the configuration directory
func (b *Builder) WithDir(dir string) *Builder {
	b.dir = dir
	return b
}

// WithLogger sets the logger
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.opts = append(b.opts, WithLogger(l))
	return b
}

// WithCodec sets the on-disk format
func (b *Builder) WithCodec(c Codec) *Builder {
	b.opts = append(b.opts, WithCodec(c))
	return b
}

// WithFormat sets the on-disk format by name ("json", "toml" or "yaml")
func (b *Builder) WithFormat(format string) *Builder {
	c, err := CodecFor(format)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithCodec(c)
}

// WithCreateMissing toggles creation of missing documents on load
func (b *Builder) WithCreateMissing(create bool) *Builder {
	b.opts = append(b.opts, WithCreateMissing(create))
	return b
}

// WithFileMode sets the permissions of saved files
func (b *Builder) WithFileMode(mode os.FileMode) *Builder {
	b.opts = append(b.opts, WithFileMode(mode))
	return b
}

// Build creates the Store. The directory must already exist.
func (b *Builder) Build() (*Store, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.dir == "" {
		return nil, fmt.Errorf("config directory not set")
	}

	s := New(b.dir, b.opts...)
	if err := s.checkDir("open"); err != nil {
		return nil, err
	}
	return s, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Store {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("confstore build failed: %v", err))
	}
	return s
}
