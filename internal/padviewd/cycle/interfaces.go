package cycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/padview/padview/internal/padviewd/assets"
	"github.com/padview/padview/internal/padviewd/countdown"
	"github.com/padview/padview/internal/padviewd/launch"
	"github.com/padview/padview/internal/padviewd/scene"
)

// Renderer is the scene renderer surface the cycle drives. Satisfied by
// scene.Renderer; narrowed here so tests can stub it.
type Renderer interface {
	LayoutCountdown(v countdown.View) scene.CountdownLayout
	DrawCountdown(v countdown.View, l scene.CountdownLayout)
	DrawStaticInfo(ev *launch.Event)
	DrawBackground(a *assets.Asset)
	Present() error
}

// Animator advances the light animation one tick at a time.
type Animator interface {
	Tick(dt time.Duration, regime countdown.Regime)
}

// AssetProvider acquires the session background image and manages its
// backing storage.
type AssetProvider interface {
	Acquire(ctx context.Context, ref launch.ImageRef) (*assets.Asset, error)
	Clear() error
}

// BootReporter shows boot progress on the panel until the final UI takes
// over.
type BootReporter interface {
	Append(category, message string)
	Disable()
}

// HistoryRecorder persists session lifecycles. Optional.
type HistoryRecorder interface {
	RecordStart(ctx context.Context, id uuid.UUID, ev *launch.Event, hadImage bool, startedAt time.Time) error
	RecordEnd(ctx context.Context, id uuid.UUID, outcome string, endedAt time.Time) error
}

// Publisher receives state transition snapshots, e.g. for the websocket
// status stream. Optional.
type Publisher interface {
	PublishState(snap Snapshot)
}
