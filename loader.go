// FILE: lixenwraith/confstore/loader.go
package confstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// Load reads the named document under a shared lock and decodes it.
// The returned Document is owned by the caller.
func (s *Store) Load(name string) (Document, error) {
	if err := s.checkDir("load"); err != nil {
		return nil, err
	}

	path := s.Path(name)
	data, err := s.readLocked(path)
	if err != nil {
		if errors.Is(err, ErrFileMissing) && s.createMissing {
			return s.create(name)
		}
		return nil, err
	}

	doc, err := s.decode(path, data)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("config loaded",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("bytes", len(data)))
	return doc, nil
}

// LoadValidated loads the named document and validates it against spec.
// Alias keys in the returned document are already rewritten to canonical names.
func (s *Store) LoadValidated(name string, spec Spec) (Document, error) {
	doc, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	if _, err := Validate(spec, doc); err != nil {
		return nil, fmt.Errorf("validate %s: %w", s.Path(name), err)
	}
	return doc, nil
}

// LoadInto loads the named document, validates it against the spec derived
// from target's struct tags and decodes it into target.
func (s *Store) LoadInto(name string, target any) error {
	spec, err := SpecFor(target)
	if err != nil {
		return err
	}
	doc, err := s.LoadValidated(name, spec)
	if err != nil {
		return err
	}
	return doc.Decode(target)
}

// readLocked returns the full file content read while holding a shared lock.
func (s *Store) readLocked(path string) (data []byte, err error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fileError("load", path, ErrFileMissing, err)
		}
		return nil, fileError("load", path, ErrUnreadable, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fileError("load", path, ErrUnreadable, err)
	}
	if info.IsDir() {
		return nil, fileError("load", path, ErrUnreadable, fmt.Errorf("is a directory"))
	}

	unlock, err := lockFile(file, false)
	if err != nil {
		return nil, fileError("load", path, ErrLockFailed, err)
	}
	defer func() {
		if uerr := unlock(); uerr != nil {
			s.logger.Warn("failed to release shared lock", zap.String("path", path), zap.Error(uerr))
		}
	}()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, fileError("load", path, ErrUnreadable, err)
	}
	return data, nil
}

// decode parses file content and requires a top-level object.
func (s *Store) decode(path string, data []byte) (Document, error) {
	v, err := s.codec.Decode(data)
	if err != nil {
		return nil, fileError("load", path, ErrInvalidJSON, err)
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, fileError("load", path, ErrInvalidJSON,
			fmt.Errorf("top-level value is %s, not an object", KindOf(v)))
	}
	return Document(m), nil
}

// create saves and returns an empty document for a missing file.
func (s *Store) create(name string) (Document, error) {
	doc := Document{}
	if err := s.Save(name, doc); err != nil {
		return nil, err
	}
	s.logger.Info("created missing config", zap.String("name", name), zap.String("path", s.Path(name)))
	return doc, nil
}
