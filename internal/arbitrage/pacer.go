package arbitrage

import (
	"context"
	"time"
)

// Pacer spaces out candidate evaluations to respect the quote API's rate cap.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedDelay sleeps for Delay between candidates.
type FixedDelay struct {
	Delay time.Duration
}

func (f FixedDelay) Wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
