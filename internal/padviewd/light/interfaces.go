package light

import (
	"sync"

	"github.com/padview/padview/internal/padviewd/colorblend"
)

// Strip drives N independently addressable RGB zones. Implementations do not
// acknowledge writes and apply no backpressure; SetColor stages a zone color
// and Show commits the staged frame to the device.
type Strip interface {
	SetColor(index int, c colorblend.RGB)
	Show()
}

// Tee fans strip writes out to several drivers, e.g. the SPI strip and the
// websocket zone stream at once.
type Tee []Strip

func (t Tee) SetColor(index int, c colorblend.RGB) {
	for _, s := range t {
		s.SetColor(index, c)
	}
}

func (t Tee) Show() {
	for _, s := range t {
		s.Show()
	}
}

// Recorder is a Strip that remembers the last committed frame. It backs the
// status API's zone color report and the animator tests. Safe for concurrent
// use: the render loop writes while the status API reads.
type Recorder struct {
	mu        sync.Mutex
	staged    []colorblend.RGB
	committed []colorblend.RGB
	shows     int
}

// NewRecorder returns a recorder for a strip of n zones.
func NewRecorder(n int) *Recorder {
	return &Recorder{
		staged:    make([]colorblend.RGB, n),
		committed: make([]colorblend.RGB, n),
	}
}

func (r *Recorder) SetColor(index int, c colorblend.RGB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index >= 0 && index < len(r.staged) {
		r.staged[index] = c
	}
}

func (r *Recorder) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy(r.committed, r.staged)
	r.shows++
}

// Colors returns a copy of the last committed frame.
func (r *Recorder) Colors() []colorblend.RGB {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]colorblend.RGB, len(r.committed))
	copy(out, r.committed)
	return out
}

// Shows returns how many frames have been committed.
func (r *Recorder) Shows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shows
}
