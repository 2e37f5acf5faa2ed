// File: lixenwraith/confstore/io.go
package confstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Save encodes doc and atomically replaces the named file with it.
// Readers observe either the previous or the new content, never a mix.
func (s *Store) Save(name string, doc Document) error {
	if err := s.checkDir("save"); err != nil {
		return err
	}

	path := s.Path(name)
	data, err := s.encode(doc)
	if err != nil {
		return fileError("save", path, ErrEncode, err)
	}

	if err := s.atomicWriteFile(path, data); err != nil {
		return err
	}

	s.logger.Debug("config saved",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("bytes", len(data)))
	return nil
}

// encode renders doc with the store codec. A nil document is saved as empty.
func (s *Store) encode(doc Document) ([]byte, error) {
	var v any = map[string]any(doc)
	if doc == nil {
		v = map[string]any{}
	}
	if err := checkEncodable(v); err != nil {
		return nil, err
	}
	return s.codec.Encode(v)
}

// atomicWriteFile writes data to a temporary file in the target directory
// and renames it over path while holding an exclusive lock on the current file.
func (s *Store) atomicWriteFile(path string, data []byte) (err error) {
	tempPath, err := s.writeTemp(path, data)
	if err != nil {
		return err
	}
	// Clean up on any error after the temp file exists
	defer func() {
		if err == nil {
			return
		}
		if rerr := os.Remove(tempPath); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			s.logger.Warn("failed to remove temporary file", zap.String("path", tempPath), zap.Error(rerr))
		}
	}()

	release, err := s.lockTarget(path)
	if err != nil {
		return err
	}
	defer release()

	if err := os.Rename(tempPath, path); err != nil {
		return fileError("save", path, ErrRenameFailed, err)
	}
	return nil
}

// writeTemp creates, fills, syncs and closes the temporary file.
func (s *Store) writeTemp(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fileError("save", path, ErrTempFile, err)
	}
	tempPath := tempFile.Name()

	fail := func(err error) (string, error) {
		tempFile.Close()
		if rerr := os.Remove(tempPath); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			s.logger.Warn("failed to remove temporary file", zap.String("path", tempPath), zap.Error(rerr))
		}
		return "", fileError("save", tempPath, ErrTempFile, err)
	}

	if _, err := tempFile.Write(data); err != nil {
		return fail(err)
	}
	if err := tempFile.Sync(); err != nil {
		return fail(err)
	}
	if err := tempFile.Chmod(s.fileMode); err != nil {
		return fail(err)
	}
	if err := tempFile.Close(); err != nil {
		return fail(err)
	}

	return tempPath, nil
}

// lockTarget takes an exclusive lock on the existing target, if any.
// The returned release func unlocks and closes it and is always non-nil.
func (s *Store) lockTarget(path string) (func(), error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return func() {}, nil
		}
		return func() {}, fileError("save", path, ErrLockFailed, err)
	}

	unlock, err := lockFile(file, true)
	if err != nil {
		file.Close()
		return func() {}, fileError("save", path, ErrLockFailed, err)
	}

	return func() {
		if uerr := unlock(); uerr != nil {
			s.logger.Warn("failed to release exclusive lock", zap.String("path", path), zap.Error(uerr))
		}
		if cerr := file.Close(); cerr != nil {
			s.logger.Warn("failed to close locked file", zap.String("path", path), zap.Error(cerr))
		}
	}, nil
}
