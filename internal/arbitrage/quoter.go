package arbitrage

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"arbscanner/internal/token"
)

// Quoter prices a single swap. Any error means "no usable quote".
type Quoter interface {
	Quote(ctx context.Context, from, to token.Token, amount *big.Int) (*big.Int, error)
}

// Limiter gates individual requests, e.g. a shared Redis window.
type Limiter interface {
	Wait(ctx context.Context) error
}

// ErrLimiter marks a quote that was never requested because the limiter failed.
var ErrLimiter = errors.New("rate limiter unavailable")

type throttledQuoter struct {
	next    Quoter
	limiter Limiter
}

// Throttled wraps q so that every quote request first passes limiter.
func Throttled(q Quoter, limiter Limiter) Quoter {
	return &throttledQuoter{next: q, limiter: limiter}
}

func (t *throttledQuoter) Quote(ctx context.Context, from, to token.Token, amount *big.Int) (*big.Int, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrLimiter, err)
	}
	return t.next.Quote(ctx, from, to, amount)
}
