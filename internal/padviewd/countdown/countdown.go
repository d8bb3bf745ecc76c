// Package countdown derives display fields and the active visual regime from
// the time remaining until an event.
package countdown

import (
	"fmt"
	"time"
)

// Regime is the current visual mode, derived purely from remaining time.
type Regime string

const (
	// RegimeAmbient is the idle nebula treatment.
	RegimeAmbient Regime = "AMBIENT"
	// RegimeWarning is the urgent red-pulse treatment close to the event.
	RegimeWarning Regime = "WARNING"
)

// WarningThreshold is the remaining time below which the display switches to
// the warning regime. The switch is a strict threshold with no hysteresis:
// the regime is recomputed from wall-clock time every frame, and remaining
// time only decreases within a session, so no flicker can result.
const WarningThreshold = 1800 * time.Second

// View holds the derived countdown fields for one frame. Ephemeral; it is
// recomputed every frame and never persisted.
type View struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Regime  Regime
}

// Evaluate computes the view for an event at target as seen at now. Remaining
// time is floor-truncated to whole seconds and never negative; the display
// cycle checks the zero crossing before calling this.
func Evaluate(target, now time.Time) View {
	remaining := target.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	secs := int(remaining / time.Second)

	v := View{
		Days:    secs / 86400,
		Hours:   (secs % 86400) / 3600,
		Minutes: (secs % 3600) / 60,
		Seconds: secs % 60,
		Regime:  RegimeAmbient,
	}
	if secs < int(WarningThreshold/time.Second) {
		v.Regime = RegimeWarning
	}
	return v
}

// Fields returns the four display fields as zero-padded strings in
// days/hours/minutes/seconds order. Days widen beyond two digits as needed;
// the other fields are always two digits.
func (v View) Fields() [4]string {
	return [4]string{
		fmt.Sprintf("%02d", v.Days),
		fmt.Sprintf("%02d", v.Hours),
		fmt.Sprintf("%02d", v.Minutes),
		fmt.Sprintf("%02d", v.Seconds),
	}
}

// Labels returns the caption drawn under each field.
func Labels() [4]string {
	return [4]string{"DAYS", "HOURS", "MINS", "SECS"}
}
