package countdown

import (
	"context"
	"time"
)

// Clock is the time source the engine schedules ticks against.
type Clock interface {
	Now() time.Time
	// SleepUntil blocks until t or until ctx is done. It returns ctx.Err()
	// when interrupted and nil otherwise.
	SleepUntil(ctx context.Context, t time.Time) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) SleepUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
