// Package covers manages imported cover image files.
package covers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store copies cover images into one managed directory, naming each copy
// by uuid so imports never collide or overwrite each other.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily
// on first import.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the managed directory.
func (s *Store) Dir() string {
	return s.dir
}

// Import copies the file at src into the managed directory and returns the
// stored path. The source extension is preserved. The copy goes through a
// temp file, fsync and rename, so a failed import never leaves a partial
// cover behind.
func (s *Store) Import(src string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create covers directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open cover source: %w", err)
	}
	defer in.Close()

	name := uuid.New().String() + strings.ToLower(filepath.Ext(src))
	dst := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".cover-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp cover: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to copy cover: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to sync cover: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp cover: %w", err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize cover: %w", err)
	}

	return dst, nil
}
