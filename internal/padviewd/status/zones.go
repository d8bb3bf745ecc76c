package status

import (
	"sync"
	"time"

	"github.com/padview/padview/api/types/v1alpha1"
	"github.com/padview/padview/internal/padviewd/colorblend"
	"github.com/padview/padview/internal/padviewd/light"
)

// zoneStreamInterval throttles zone broadcasts below the 5/s render rate so a
// slow subscriber never sees an unbounded backlog.
const zoneStreamInterval = 250 * time.Millisecond

// ZoneStream is a light.Strip that mirrors committed zone colors to status
// stream subscribers. Teed alongside the hardware strip so remote observers
// see exactly what the device shows.
type ZoneStream struct {
	rec *light.Recorder

	mu       sync.Mutex
	hub      *Hub
	lastSent time.Time
}

// NewZoneStream returns a stream mirror for a strip of n zones.
func NewZoneStream(n int) *ZoneStream {
	return &ZoneStream{rec: light.NewRecorder(n)}
}

func (z *ZoneStream) SetColor(index int, c colorblend.RGB) {
	z.rec.SetColor(index, c)
}

func (z *ZoneStream) Show() {
	z.rec.Show()

	z.mu.Lock()
	hub := z.hub
	due := time.Since(z.lastSent) >= zoneStreamInterval
	if hub != nil && due {
		z.lastSent = time.Now()
	}
	z.mu.Unlock()

	if hub == nil || !due {
		return
	}
	hub.send(&v1alpha1.StreamMessage{
		Type:      v1alpha1.StreamMessageZones,
		Zones:     z.ZoneColors(),
		Timestamp: time.Now(),
	})
}

// ZoneColors returns the last committed frame in wire form.
func (z *ZoneStream) ZoneColors() []v1alpha1.ZoneColor {
	colors := z.rec.Colors()
	out := make([]v1alpha1.ZoneColor, len(colors))
	for i, c := range colors {
		out[i] = v1alpha1.ZoneColor{Zone: i, R: c.R, G: c.G, B: c.B}
	}
	return out
}

func (z *ZoneStream) attach(hub *Hub) {
	z.mu.Lock()
	z.hub = hub
	z.mu.Unlock()
}

var _ light.Strip = (*ZoneStream)(nil)
