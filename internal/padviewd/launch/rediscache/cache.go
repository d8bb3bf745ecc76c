// Package rediscache wraps a launch.Source with a Redis-backed cache. The
// Launch Library API applies strict rate limits; the cache keeps restarts and
// the periodic refresh from burning through the quota, and serves the last
// known event when the upstream is unreachable.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/padview/padview/internal/padviewd/launch"
	"github.com/padview/padview/internal/padviewd/metrics"
)

const (
	// freshKey holds the cached event for the TTL window.
	freshKey = "padview:launch:next"
	// staleKey holds the last successful fetch indefinitely, as a fallback
	// when the upstream fails after the TTL expires.
	staleKey = "padview:launch:last"
)

// Source is a caching launch.Source.
type Source struct {
	upstream launch.Source
	client   *redis.Client
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Source.
type Option func(*Source)

// WithNow overrides the time source used to reject past events.
func WithNow(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

// New wraps upstream with a cache using the given TTL.
func New(upstream launch.Source, client *redis.Client, ttl time.Duration, logger *slog.Logger, opts ...Option) *Source {
	s := &Source{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextEvent returns the cached event while it is fresh, otherwise consults
// the upstream. An upstream failure falls back to the last known event; only
// when neither is available does the error propagate. A cached event whose
// launch time has already passed is never served: after a countdown expires
// it would immediately expire again, so it counts as a miss on the fresh path
// and is skipped on the stale path.
func (s *Source) NextEvent(ctx context.Context) (*launch.Event, error) {
	if ev, err := s.get(ctx, freshKey); err == nil {
		if s.upcoming(ev) {
			metrics.CacheOperations.WithLabelValues("get", "hit").Inc()
			return ev, nil
		}
		metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
	} else if err != redis.Nil {
		metrics.CacheOperations.WithLabelValues("get", "error").Inc()
		s.logger.Warn("launch cache read failed", "error", err)
	} else {
		metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
	}

	ev, err := s.upstream.NextEvent(ctx)
	if err != nil {
		if stale, staleErr := s.get(ctx, staleKey); staleErr == nil && s.upcoming(stale) {
			s.logger.Warn("serving stale launch after upstream failure", "error", err, "name", stale.Name)
			return stale, nil
		}
		return nil, err
	}

	s.put(ctx, ev)
	return ev, nil
}

// upcoming reports whether the event's launch time is still in the future.
func (s *Source) upcoming(ev *launch.Event) bool {
	return s.now().Before(ev.Net)
}

// Invalidate drops the fresh cache entry so the next fetch hits upstream.
// The stale fallback entry is kept.
func (s *Source) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, freshKey).Err()
}

func (s *Source) get(ctx context.Context, key string) (*launch.Event, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var ev launch.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decoding cached event: %w", err)
	}
	return &ev, nil
}

func (s *Source) put(ctx context.Context, ev *launch.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Warn("encoding event for cache failed", "error", err)
		return
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, freshKey, data, s.ttl)
	pipe.Set(ctx, staleKey, data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		metrics.CacheOperations.WithLabelValues("set", "error").Inc()
		s.logger.Warn("launch cache write failed", "error", err)
		return
	}
	metrics.CacheOperations.WithLabelValues("set", "ok").Inc()
}
