// Package cycle implements the display state machine: boot, event fetch,
// asset acquisition, countdown session, and refresh, around a non-blocking
// per-frame render loop.
package cycle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/padview/padview/internal/padviewd/clock"
	"github.com/padview/padview/internal/padviewd/countdown"
	"github.com/padview/padview/internal/padviewd/errors"
	"github.com/padview/padview/internal/padviewd/launch"
	"github.com/padview/padview/internal/padviewd/metrics"
)

// State names the display cycle's position in its lifecycle.
type State string

const (
	StateBooting          State = "BOOTING"
	StateFetching         State = "FETCHING"
	StateFetchFailed      State = "FETCH_FAILED"
	StateSessionActive    State = "SESSION_ACTIVE"
	StateCountdownExpired State = "COUNTDOWN_EXPIRED"
)

// Session outcomes recorded in history and metrics.
const (
	OutcomeExpired   = "expired"
	OutcomeRefreshed = "refreshed"
	OutcomeAborted   = "aborted"
)

// Config holds the cycle's timing policy.
type Config struct {
	// FrameInterval is the render loop period. 200ms keeps the LED motion
	// smooth and the countdown second ticking cleanly without excessive
	// redraw work.
	FrameInterval time.Duration
	// IdleInterval is how long to wait before re-querying when the launch
	// window is empty.
	IdleInterval time.Duration
	// RefreshAfter ends a session early to re-fetch event data. Zero
	// disables the periodic refresh; expiry always re-fetches.
	RefreshAfter time.Duration
	// Retry governs the fetch loop.
	Retry Policy
}

// DefaultConfig matches the documented production policy.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 200 * time.Millisecond,
		IdleInterval:  500 * time.Second,
		RefreshAfter:  time.Hour,
		Retry:         Policy{Delay: 30 * time.Second},
	}
}

// Snapshot is a point-in-time view of the cycle for the status API.
type Snapshot struct {
	State        State
	Event        *launch.Event
	View         *countdown.View
	SessionID    uuid.UUID
	SessionStart time.Time
}

// Cycle owns one EventRecord and one ImageAsset at a time and drives the
// frame loop. Single logical thread of control: Run is the only mutator of
// render and light state, and blocking work (fetch, download, decode) only
// happens at state transitions, never inside the frame loop.
type Cycle struct {
	cfg      Config
	source   launch.Source
	assets   AssetProvider
	renderer Renderer
	animator Animator
	clk      clock.Clock
	logger   *slog.Logger

	bootlog   BootReporter    // optional
	history   HistoryRecorder // optional
	publisher Publisher       // optional

	refreshCh chan struct{}

	mu           sync.RWMutex
	state        State
	event        *launch.Event
	view         *countdown.View
	sessionID    uuid.UUID
	sessionStart time.Time
}

// New assembles a display cycle. bootlog, history and publisher may be nil.
func New(cfg Config, source launch.Source, assets AssetProvider, renderer Renderer, animator Animator, clk clock.Clock, logger *slog.Logger) *Cycle {
	return &Cycle{
		cfg:       cfg,
		source:    source,
		assets:    assets,
		renderer:  renderer,
		animator:  animator,
		clk:       clk,
		logger:    logger,
		refreshCh: make(chan struct{}, 1),
		state:     StateBooting,
	}
}

// WithBootLog attaches the on-screen boot log.
func (c *Cycle) WithBootLog(b BootReporter) *Cycle {
	c.bootlog = b
	return c
}

// WithHistory attaches the session history recorder.
func (c *Cycle) WithHistory(h HistoryRecorder) *Cycle {
	c.history = h
	return c
}

// WithPublisher attaches the state transition publisher.
func (c *Cycle) WithPublisher(p Publisher) *Cycle {
	c.publisher = p
	return c
}

// Run drives the state machine until ctx is canceled. No failure terminates
// the loop: fetch failures retry, asset failures degrade to no image, and
// render failures are fatal only to their frame.
func (c *Cycle) Run(ctx context.Context) error {
	c.boot()

	for ctx.Err() == nil {
		ev, err := c.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			// Only an empty window reaches here; wait it out with the
			// animation running, then query again.
			c.bootSay("WEB", "no upcoming launch, waiting")
			c.wait(ctx, c.cfg.IdleInterval)
			continue
		}
		if !c.clk.Now().Before(ev.Net) {
			// A source (or its cache) handed back a launch that has already
			// passed; starting a session would expire on its first frame and
			// churn. Wait for the schedule to move on.
			c.logger.Warn("fetched launch already passed, waiting", "name", ev.Name, "net", ev.Net)
			c.bootSay("DATA", "launch already passed, waiting")
			c.wait(ctx, c.cfg.IdleInterval)
			continue
		}
		c.runSession(ctx, ev)
	}
	return ctx.Err()
}

// Refresh asks the running session to end and re-fetch. Non-blocking; extra
// requests while one is pending are coalesced.
func (c *Cycle) Refresh() {
	select {
	case c.refreshCh <- struct{}{}:
	default:
	}
}

// Status returns a snapshot of the cycle for the status API.
func (c *Cycle) Status() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		State:        c.state,
		Event:        c.event,
		View:         c.view,
		SessionID:    c.sessionID,
		SessionStart: c.sessionStart,
	}
}

// boot initializes storage and reports progress on the panel.
func (c *Cycle) boot() {
	c.setState(StateBooting)
	c.bootSay("SYSTEM", "padview starting")

	c.bootSay("DISK", "clearing cached images")
	if err := c.assets.Clear(); err != nil {
		c.logger.Warn("clearing asset cache failed", "error", err)
		c.bootSay("DISK", "cached image cleanup failed")
	}
}

// fetch queries the launch source under the retry policy. Fetch failures are
// retried with a fixed delay; an empty launch window is returned to the
// caller for the idle wait.
func (c *Cycle) fetch(ctx context.Context) (*launch.Event, error) {
	c.setState(StateFetching)
	c.bootSay("WEB", "fetching next launch")

	var ev *launch.Event
	err := c.cfg.Retry.Do(ctx, c.wait, func(ctx context.Context) error {
		if c.Status().State == StateFetchFailed {
			c.setState(StateFetching)
		}
		got, err := c.source.NextEvent(ctx)
		if err != nil {
			if errors.IsNoUpcoming(err) {
				// Not a transient failure; stop retrying.
				return nil
			}
			metrics.FetchFailures.Inc()
			c.logger.Warn("launch fetch failed", "error", err)
			c.bootSay("WEB", "launch fetch failed, retrying")
			c.setState(StateFetchFailed)
			return err
		}
		ev = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, errors.ErrNoUpcoming
	}

	// A fresh fetch always replaces whatever record came before it.
	c.bootSay("DATA", "next launch: "+ev.Name)
	return ev, nil
}

// runSession renders the static scene once, then runs the frame loop until
// expiry or refresh.
func (c *Cycle) runSession(ctx context.Context, ev *launch.Event) {
	asset, err := c.assets.Acquire(ctx, ev.Image)
	if err != nil {
		// Degrade gracefully: the countdown proceeds on a solid background.
		metrics.AssetFailures.Inc()
		c.logger.Warn("image acquisition failed, continuing without background", "error", err)
		asset = nil
	}

	if c.bootlog != nil {
		c.bootlog.Disable()
	}

	id := uuid.New()
	startedAt := c.clk.Now()
	c.startSession(id, ev, startedAt)

	if c.history != nil {
		if err := c.history.RecordStart(ctx, id, ev, asset != nil, startedAt); err != nil {
			c.logger.Warn("recording session start failed", "error", err)
		}
	}

	c.renderer.DrawBackground(asset)
	c.renderer.DrawStaticInfo(ev)
	if err := c.renderer.Present(); err != nil {
		c.logger.Warn("presenting static scene failed", "error", err)
	}

	outcome := c.frameLoop(ctx, ev, startedAt)

	// The image and its backing storage are reclaimed before the next
	// fetch; the animator's phase deliberately survives the session.
	asset.Discard()

	c.setState(StateCountdownExpired)
	metrics.SessionsTotal.WithLabelValues(outcome).Inc()
	c.logger.Info("session ended", "name", ev.Name, "outcome", outcome)

	if c.history != nil {
		if err := c.history.RecordEnd(ctx, id, outcome, c.clk.Now()); err != nil {
			c.logger.Warn("recording session end failed", "error", err)
		}
	}
}

// frameLoop is the per-frame countdown loop. It must stay non-blocking: all
// work in here is in-memory rendering plus the strip commit.
func (c *Cycle) frameLoop(ctx context.Context, ev *launch.Event, startedAt time.Time) string {
	for {
		if ctx.Err() != nil {
			return OutcomeAborted
		}
		select {
		case <-c.refreshCh:
			return OutcomeRefreshed
		default:
		}

		now := c.clk.Now()
		if !now.Before(ev.Net) {
			return OutcomeExpired
		}
		if c.cfg.RefreshAfter > 0 && now.Sub(startedAt) >= c.cfg.RefreshAfter {
			return OutcomeRefreshed
		}

		frameStart := time.Now()
		view := countdown.Evaluate(ev.Net, now)
		c.setView(view)

		c.animator.Tick(c.cfg.FrameInterval, view.Regime)

		layout := c.renderer.LayoutCountdown(view)
		c.renderer.DrawCountdown(view, layout)
		if err := c.renderer.Present(); err != nil {
			// Fatal only to this frame.
			c.logger.Warn("frame present failed", "error", err)
		}

		metrics.FramesTotal.Inc()
		metrics.FrameDuration.Observe(time.Since(frameStart).Seconds())

		c.clk.Sleep(ctx, c.cfg.FrameInterval)
	}
}

// wait sleeps for d in frame-sized slices, keeping the ambient animation
// flowing and honoring refresh requests and cancellation.
func (c *Cycle) wait(ctx context.Context, d time.Duration) {
	deadline := c.clk.Now().Add(d)
	for c.clk.Now().Before(deadline) {
		if ctx.Err() != nil {
			return
		}
		select {
		case <-c.refreshCh:
			return
		default:
		}
		c.animator.Tick(c.cfg.FrameInterval, countdown.RegimeAmbient)
		c.clk.Sleep(ctx, c.cfg.FrameInterval)
	}
}

func (c *Cycle) setState(s State) {
	c.mu.Lock()
	c.state = s
	if s != StateSessionActive {
		c.view = nil
	}
	c.mu.Unlock()
	c.publish()
}

func (c *Cycle) startSession(id uuid.UUID, ev *launch.Event, startedAt time.Time) {
	c.mu.Lock()
	c.state = StateSessionActive
	c.event = ev
	c.sessionID = id
	c.sessionStart = startedAt
	c.view = nil
	c.mu.Unlock()
	c.publish()
}

func (c *Cycle) setView(v countdown.View) {
	c.mu.Lock()
	c.view = &v
	c.mu.Unlock()
}

func (c *Cycle) publish() {
	if c.publisher != nil {
		c.publisher.PublishState(c.Status())
	}
}

// bootSay mirrors a progress line to the on-screen boot log. After the boot
// log is disabled these lines go to the structured logger only.
func (c *Cycle) bootSay(category, message string) {
	c.logger.Info(message, "category", category)
	if c.bootlog != nil {
		c.bootlog.Append(category, message)
	}
}
