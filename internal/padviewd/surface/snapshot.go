package surface

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot presents frames as a PNG file, replaced atomically on each
// present. Useful for headless runs and remote inspection.
type Snapshot struct {
	mu   sync.Mutex
	path string
}

// NewSnapshot writes frames to path (parent directory must exist).
func NewSnapshot(path string) *Snapshot {
	return &Snapshot{path: path}
}

// Present encodes the frame and renames it into place so readers never see a
// partial file.
func (s *Snapshot) Present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".frame-*.png")
	if err != nil {
		return fmt.Errorf("creating snapshot temp file: %w", err)
	}

	if err := png.Encode(tmp, frame); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publishing snapshot: %w", err)
	}
	return nil
}

var _ Presenter = (*Snapshot)(nil)
var _ Presenter = (*Framebuffer)(nil)
