// Package clock allows injecting time into the countdown and display cycle.
package clock

import (
	"context"
	"time"
)

// Clock provides the current instant and cooperative sleeping for the frame
// loop. Sleep returns early when ctx is canceled.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Fake is a manually advanced clock for tests. Sleep advances the clock
// instead of blocking, so frame loops run instantly under test.
type Fake struct {
	now time.Time
}

// NewFake returns a fake clock starting at t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t.UTC()}
}

func (f *Fake) Now() time.Time {
	return f.now
}

func (f *Fake) Sleep(_ context.Context, d time.Duration) {
	f.now = f.now.Add(d)
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}
