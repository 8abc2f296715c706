package gif

import (
	"context"
	"time"
)

// Clock abstracts the inter-frame delay so Play's pacing can be replaced in
// tests (or sped up/slowed down by a caller) without touching the decoder.
type Clock interface {
	// Sleep blocks for d or until ctx is done, whichever comes first. It
	// returns ctx.Err() if interrupted, nil otherwise.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock sleeps in 10ms ticks, checking ctx.Done() between each one, so
// a canceled context interrupts a long delay within one tick instead of
// blocking for the full duration.
type RealClock struct{}

const tick = 10 * time.Millisecond

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(tick)
	defer t.Stop()
	for remaining := d; remaining > 0; remaining -= tick {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		t.Reset(tick)
	}
	return nil
}
