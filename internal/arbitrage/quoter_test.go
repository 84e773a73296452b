package arbitrage

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"arbscanner/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubLimiter struct {
	waits int
	err   error
}

func (s *stubLimiter) Wait(context.Context) error {
	s.waits++
	return s.err
}

// go test -v --run TestThrottled
func TestThrottled(t *testing.T) {
	q := newFakeQuoter()
	q.rate("DAI", "T1", 1, 1)
	lim := &stubLimiter{}

	got, err := Throttled(q, lim).Quote(context.Background(), dai, t1, big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Int64())
	assert.Equal(t, 1, lim.waits)

	lim.err = errors.New("redis down")
	_, err = Throttled(q, lim).Quote(context.Background(), dai, t1, big.NewInt(7))
	require.ErrorIs(t, err, ErrLimiter)
	assert.Len(t, q.calls, 1, "request must not go out when the limiter fails")
}

// go test -v --run TestLimiterFailureRecordsNoBadPair
func TestLimiterFailureRecordsNoBadPair(t *testing.T) {
	q := newFakeQuoter()
	q.rate("DAI", "T1", 1, 1)
	q.rate("T1", "DAI", 1, 1)
	lim := &stubLimiter{err: errors.New("redis: connection refused")}
	pacer := &countingPacer{}
	ev := NewEvaluator(Throttled(q, lim), pacer, zaptest.NewLogger(t))

	res, err := ev.Run(context.Background(), dai, big.NewInt(1000), []token.Token{t1, t3}, nil)
	require.ErrorIs(t, err, ErrLimiter)

	assert.Empty(t, q.calls)
	assert.Empty(t, res.NewBadPairs)
	assert.Zero(t, res.BadPairs.Len())
	assert.Equal(t, 1, lim.waits, "run stops at the first limiter failure")
	assert.Zero(t, pacer.waits)
}

// go test -v --run TestThrottledCancelled
func TestThrottledCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lim := &stubLimiter{err: context.Canceled}

	_, err := Throttled(newFakeQuoter(), lim).Quote(ctx, dai, t1, big.NewInt(7))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrLimiter)
}

// go test -v --run TestFixedDelay
func TestFixedDelay(t *testing.T) {
	begin := time.Now()
	require.NoError(t, FixedDelay{Delay: 20 * time.Millisecond}.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(begin), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, FixedDelay{Delay: time.Hour}.Wait(ctx), context.Canceled)
	assert.NoError(t, FixedDelay{}.Wait(context.Background()))
}
