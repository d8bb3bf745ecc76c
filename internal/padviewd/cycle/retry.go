package cycle

import (
	"context"
	"time"
)

// Policy is an explicit retry policy for the fetch loop. The production
// configuration retries forever with a fixed delay; tests inject a cap.
type Policy struct {
	// Delay between attempts.
	Delay time.Duration
	// MaxAttempts caps the number of attempts; zero means unlimited.
	MaxAttempts int
}

// Do runs fn until it succeeds, the attempt cap is reached, or ctx is
// canceled. The sleep function is injected so the caller can keep the light
// animation running between attempts.
func (p Policy) Do(ctx context.Context, sleep func(context.Context, time.Duration), fn func(context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sleep(ctx, p.Delay)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
