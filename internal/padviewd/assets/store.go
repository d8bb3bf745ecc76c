package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxNameLen bounds sanitized filenames; upstream URLs occasionally carry
// very long slugs.
const maxNameLen = 150

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// Store manages the on-disk image cache directory.
type Store struct {
	dir string
}

// NewStore creates the cache directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating asset directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Clear removes all cached images. Called at boot so stale downloads from a
// previous run never accumulate.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("listing asset directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("removing stale asset %q: %w", e.Name(), err)
		}
	}
	return nil
}

// Save writes r to a sanitized filename derived from name, preserving the
// original extension, and returns the full path.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, SanitizeFilename(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating asset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing asset file: %w", err)
	}
	return path, nil
}

// SanitizeFilename maps an arbitrary URL basename to a safe filename while
// keeping its exact extension.
func SanitizeFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" {
		base = "image"
	}
	if len(base) > maxNameLen {
		base = base[:maxNameLen]
	}
	return base + strings.ToLower(unsafeChars.ReplaceAllString(ext, "_"))
}
