package launch

import "context"

// Source supplies the next upcoming event after now. Implementations may
// block for network round-trips; they are only called at state transitions,
// never inside the frame loop.
type Source interface {
	NextEvent(ctx context.Context) (*Event, error)
}
