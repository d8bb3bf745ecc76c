// Package light implements the multi-zone ambient animation and the strip
// drivers it commits frames to.
package light

import (
	"math"
	"time"

	"github.com/padview/padview/internal/padviewd/colorblend"
	"github.com/padview/padview/internal/padviewd/countdown"
)

// DefaultZoneCount matches the reference hardware's seven-zone strip.
const DefaultZoneCount = 7

// Animation rates, in units per second of tick time. The frame interval is
// fixed, so these translate to the fixed per-tick increments the animation
// is tuned around.
const (
	// progressRate advances the palette blend; one full stop every 10s.
	progressRate = 0.1
	// breatheRate drives the slow sine brightness modulation.
	breatheRate = 0.5
	// pulseRate drives the warning pulse; noticeably faster than breathing
	// so the strip reads as urgent.
	pulseRate = 4.0
)

// zone tracks one strip element's position in the palette cycle.
type zone struct {
	current int
	next    int
}

// Animator owns the light zone states and advances them one tick at a time.
// phase increases monotonically for the life of the process and is never
// reset, not on regime switches and not between sessions; resetting it
// produces a visible jump in the animation. No method reinitializes it.
type Animator struct {
	palette  Palette
	zones    []zone
	strip    Strip
	phase    float64
	progress float64
}

// NewAnimator creates an animator for n zones committing to strip. Zone i
// starts at palette stop i (mod palette length) so the strip shows a
// traveling gradient rather than a flashing block.
func NewAnimator(n int, palette Palette, strip Strip) *Animator {
	a := &Animator{
		palette: palette,
		zones:   make([]zone, n),
		strip:   strip,
	}
	for i := range a.zones {
		a.zones[i].current = i % len(palette)
		a.zones[i].next = (i + 1) % len(palette)
	}
	return a
}

// Tick advances the animation by dt and commits the resulting zone colors to
// the strip exactly once.
func (a *Animator) Tick(dt time.Duration, regime countdown.Regime) {
	if regime == countdown.RegimeWarning {
		a.tickWarning(dt)
	} else {
		a.tickAmbient(dt)
	}
	a.strip.Show()
}

// tickWarning drives every zone identically with a sine-modulated red
// channel. The period is independent of the palette, and no per-zone stagger
// or brightness modulation is applied: the pulse must look synchronized.
func (a *Animator) tickWarning(dt time.Duration) {
	red := uint8(100 + 100*math.Sin(a.phase))
	for i := range a.zones {
		a.strip.SetColor(i, colorblend.RGB{R: red})
	}
	a.phase += pulseRate * dt.Seconds()
}

// tickAmbient blends each zone from its current palette stop toward the next
// and layers the per-zone breathing brightness on top.
func (a *Animator) tickAmbient(dt time.Duration) {
	for i := range a.zones {
		z := a.zones[i]
		c := colorblend.Lerp(a.palette.Stop(z.current), a.palette.Stop(z.next), a.progress)

		// Per-zone phase offset keeps neighboring zones breathing out of
		// step instead of strobing together.
		factor := 0.5 + 0.5*math.Sin(a.phase+float64(i)*0.5)
		a.strip.SetColor(i, colorblend.Scale(c, factor))
	}

	a.phase += breatheRate * dt.Seconds()
	a.progress += progressRate * dt.Seconds()
	if a.progress >= 1.0 {
		a.progress = 0
		for i := range a.zones {
			a.zones[i].current = a.zones[i].next
			a.zones[i].next = (a.zones[i].next + 1) % len(a.palette)
		}
	}
}

// ZoneStops returns each zone's current palette stop index.
func (a *Animator) ZoneStops() []int {
	out := make([]int, len(a.zones))
	for i, z := range a.zones {
		out[i] = z.current
	}
	return out
}

// Phase reports the monotone animation phase. Exposed for observability only.
func (a *Animator) Phase() float64 {
	return a.phase
}
