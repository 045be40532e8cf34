package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// IOError indicates a failure to create or write files in the output
// directory (images or the report itself).
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Path: dir, Err: err}
	}
	return nil
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
// The temp name carries a unique suffix so concurrent runs against the same
// output directory cannot clobber each other's in-flight writes.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("write temp file: %w", err)}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &IOError{Path: path, Err: fmt.Errorf("atomic rename: %w", err)}
	}
	return nil
}

// SanitizeBase converts an arbitrary column or dataset name into a string safe
// to use inside a filename.
func SanitizeBase(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			out = append(out, r)
		case r == ' ':
			out = append(out, '_')
		default:
			// drop anything the filesystem might object to
		}
	}
	if len(out) == 0 {
		return "column"
	}
	return string(out)
}

// Stem returns the file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return SanitizeBase(base[:len(base)-len(filepath.Ext(base))])
}
