// FILE: lixenwraith/confstore/errors.go
package confstore

import (
	"errors"
	"fmt"
)

// Store errors. Every error returned by Load and Save matches exactly one of
// these with errors.Is.
var (
	ErrDirectoryMissing = errors.New("config directory does not exist")
	ErrFileMissing      = errors.New("config file does not exist")
	ErrUnreadable       = errors.New("config file is not readable")
	ErrLockFailed       = errors.New("failed to lock config file")
	ErrInvalidJSON      = errors.New("invalid config document")
	ErrEncode           = errors.New("failed to encode config document")
	ErrTempFile         = errors.New("failed to write temporary file")
	ErrRenameFailed     = errors.New("failed to replace config file")
)

// Validation errors, carried by *SchemaError.
var (
	ErrMissingKey          = errors.New("missing required key")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrPredicateFailed     = errors.New("predicate failed")
	ErrUnknownExpectedType = errors.New("unknown expected type")
)

// FileError describes a failed store operation on a single file.
type FileError struct {
	// Op is the operation that failed ("load" or "save").
	Op string
	// Path is the file or directory the operation was working on.
	Path string
	// Kind is one of the store sentinel errors.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fileError(op, path string, kind, err error) *FileError {
	return &FileError{Op: op, Path: path, Kind: kind, Err: err}
}

// SchemaError describes the first violation found by Validate.
type SchemaError struct {
	// Kind is one of the validation sentinel errors.
	Kind error
	// Key is the key specifier from the spec, aliases included (e.g. "db|database").
	Key string
	// Context is the chain of canonical keys leading to the mapping that
	// holds Key, e.g. "root->database".
	Context string
	// Expected and Actual are set for ErrTypeMismatch and ErrUnknownExpectedType.
	Expected string
	Actual   string
	// Err is the predicate's error for ErrPredicateFailed.
	Err error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	switch e.Kind {
	case ErrMissingKey:
		return fmt.Sprintf("%s: %v %q", e.Context, e.Kind, e.Key)
	case ErrTypeMismatch:
		return fmt.Sprintf("%s: %v for %q: expected %s, got %s", e.Context, e.Kind, e.Key, e.Expected, e.Actual)
	case ErrUnknownExpectedType:
		return fmt.Sprintf("%s: %v %q for %q", e.Context, e.Kind, e.Expected, e.Key)
	case ErrPredicateFailed:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v for %q: %v", e.Context, e.Kind, e.Key, e.Err)
		}
		return fmt.Sprintf("%s: %v for %q", e.Context, e.Kind, e.Key)
	default:
		return fmt.Sprintf("%s: %v for %q", e.Context, e.Kind, e.Key)
	}
}

// Unwrap exposes both the kind and the predicate error.
func (e *SchemaError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Path returns the full key path of the offending key, e.g. "root->db->port".
func (e *SchemaError) Path() string {
	return e.Context + contextSeparator + canonicalName(e.Key)
}
