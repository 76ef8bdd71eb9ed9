package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source resolves shader files, preferring Dir on disk and falling back to
// the Embedded file system.
type Source struct {
	Dir      string
	Embedded fs.FS
}

// Read returns the text of the named shader file.
func (s Source) Read(name string) (string, error) {
	if s.Dir != "" {
		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) || s.Embedded == nil {
			return "", fmt.Errorf("read shader %s: %w", name, err)
		}
	}
	if s.Embedded == nil {
		return "", fmt.Errorf("read shader %s: no source directory or embedded sources", name)
	}

	data, err := fs.ReadFile(s.Embedded, name)
	if err != nil {
		return "", fmt.Errorf("read embedded shader %s: %w", name, err)
	}
	return string(data), nil
}

// Origin describes where Read looks first, for logging.
func (s Source) Origin() string {
	if s.Dir != "" {
		return s.Dir
	}
	return "embedded"
}
