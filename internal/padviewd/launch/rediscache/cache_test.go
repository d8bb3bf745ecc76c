package rediscache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padview/padview/internal/padviewd/errors"
	"github.com/padview/padview/internal/padviewd/launch"
)

type fakeUpstream struct {
	ev    *launch.Event
	err   error
	calls int
}

func (f *fakeUpstream) NextEvent(ctx context.Context) (*launch.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ev, nil
}

func testEvent() *launch.Event {
	return &launch.Event{
		Name:     "Artemis III",
		Net:      time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC),
		Provider: "NASA",
		Location: "Kennedy Space Center, FL, USA",
		Image:    launch.ImageURL("https://img.example.com/artemis.png"),
	}
}

// setup pins the cache's clock well before testEvent's launch time; tests
// move it through the returned pointer.
func setup(t *testing.T, upstream launch.Source, ttl time.Duration) (*Source, *miniredis.Miniredis, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	src := New(upstream, client, ttl, logger, WithNow(func() time.Time { return now }))
	return src, mr, &now
}

func TestMissThenHit(t *testing.T) {
	up := &fakeUpstream{ev: testEvent()}
	src, _, _ := setup(t, up, time.Minute)
	ctx := context.Background()

	ev, err := src.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Artemis III", ev.Name)
	assert.Equal(t, 1, up.calls)

	// Second call is served from cache without touching upstream.
	ev, err = src.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Artemis III", ev.Name)
	assert.Equal(t, 1, up.calls)

	url, ok := ev.Image.URL()
	require.True(t, ok)
	assert.Equal(t, "https://img.example.com/artemis.png", url)
}

func TestExpiryRefetches(t *testing.T) {
	up := &fakeUpstream{ev: testEvent()}
	src, mr, _ := setup(t, up, time.Minute)
	ctx := context.Background()

	_, err := src.NextEvent(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = src.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)
}

func TestStaleFallbackOnUpstreamFailure(t *testing.T) {
	up := &fakeUpstream{ev: testEvent()}
	src, mr, _ := setup(t, up, time.Minute)
	ctx := context.Background()

	_, err := src.NextEvent(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	up.err = errors.ErrFetchFailed

	ev, err := src.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Artemis III", ev.Name)
}

func TestFailureWithEmptyCachePropagates(t *testing.T) {
	up := &fakeUpstream{err: errors.ErrFetchFailed}
	src, _, _ := setup(t, up, time.Minute)

	_, err := src.NextEvent(context.Background())
	assert.True(t, errors.IsFetchFailed(err))
}

func TestExpiredFreshEntryTreatedAsMiss(t *testing.T) {
	up := &fakeUpstream{ev: testEvent()}
	src, _, now := setup(t, up, time.Hour)
	ctx := context.Background()

	_, err := src.NextEvent(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, up.calls)

	// The cached entry is still inside its TTL, but the launch has since
	// passed; serving it would restart an already-expired countdown.
	*now = testEvent().Net.Add(time.Second)
	later := testEvent()
	later.Net = now.Add(48 * time.Hour)
	up.ev = later

	ev, err := src.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)
	assert.True(t, now.Before(ev.Net))
}

func TestStaleFallbackSkipsPastEvent(t *testing.T) {
	up := &fakeUpstream{ev: testEvent()}
	src, mr, now := setup(t, up, time.Minute)
	ctx := context.Background()

	_, err := src.NextEvent(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	*now = testEvent().Net.Add(time.Hour)
	up.err = errors.ErrFetchFailed

	// The only fallback on record has already launched; the failure must
	// propagate rather than resurrect it.
	_, err = src.NextEvent(ctx)
	assert.True(t, errors.IsFetchFailed(err))
}

func TestInvalidate(t *testing.T) {
	up := &fakeUpstream{ev: testEvent()}
	src, _, _ := setup(t, up, time.Hour)
	ctx := context.Background()

	_, err := src.NextEvent(ctx)
	require.NoError(t, err)
	require.NoError(t, src.Invalidate(ctx))

	_, err = src.NextEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, up.calls)
}
