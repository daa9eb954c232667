package checker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// pause blocks for d or until ctx is cancelled. The sequential run calls it
// after every probe, including the last one.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("pause interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// newLimiter returns the limiter shared by concurrent workers: at most one
// request per delay across all workers, or unlimited when delay is zero.
func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
