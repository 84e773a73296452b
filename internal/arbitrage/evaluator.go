package arbitrage

import (
	"context"
	"errors"
	"math/big"

	"arbscanner/internal/badpair"
	"arbscanner/internal/token"

	"go.uber.org/zap"
)

type skipReason string

const (
	skipSelf       skipReason = "self pair"
	skipCrossChain skipReason = "different chain"
	skipKnownBad   skipReason = "known bad pair"
)

// Result summarizes one pass over a candidate list.
type Result struct {
	Opportunities []Opportunity
	Evaluated     int
	Skipped       int
	// BadPairs holds the loaded pairs followed by the ones found this run.
	BadPairs    *badpair.Set
	NewBadPairs []badpair.Pair
}

// Evaluator walks candidate tokens and prices start -> candidate -> start
// round trips one at a time.
type Evaluator struct {
	quoter    Quoter
	pacer     Pacer
	reporters []Reporter
	logger    *zap.Logger
}

func NewEvaluator(quoter Quoter, pacer Pacer, logger *zap.Logger, reporters ...Reporter) *Evaluator {
	return &Evaluator{
		quoter:    quoter,
		pacer:     pacer,
		reporters: reporters,
		logger:    logger,
	}
}

// Run evaluates every candidate in order. Quote failures never abort the run;
// they are folded into the returned bad pair set. A cancelled ctx or a failing
// limiter stops the loop early and the partial result is returned with the error.
// A pair is never recorded as bad unless its quote was actually requested.
func (e *Evaluator) Run(ctx context.Context, start token.Token, amount *big.Int,
	candidates []token.Token, known []badpair.Pair) (*Result, error) {

	loaded := badpair.NewSet(known...)
	res := &Result{BadPairs: badpair.NewSet(known...)}

	for i, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if reason, skip := checkEligible(start, cand, loaded); skip {
			e.logger.Debug("skipping candidate",
				zap.String("candidate", cand.Symbol),
				zap.String("address", cand.Address),
				zap.String("reason", string(reason)))
			res.Skipped++
			continue
		}
		res.Evaluated++

		opp, err := e.roundTrip(ctx, start, cand, amount)
		switch {
		case err != nil && ctx.Err() != nil:
			return res, ctx.Err()
		case errors.Is(err, ErrLimiter):
			e.logger.Error("scan aborted",
				zap.String("candidate", cand.Symbol),
				zap.Error(err))
			return res, err
		case err != nil:
			e.logger.Warn("quote unavailable",
				zap.String("start", start.Symbol),
				zap.String("candidate", cand.Symbol),
				zap.Error(err))
			if res.BadPairs.Add(start.Symbol, cand.Symbol) {
				res.NewBadPairs = append(res.NewBadPairs, badpair.Pair{A: start.Symbol, B: cand.Symbol})
			}
		case opp != nil:
			res.Opportunities = append(res.Opportunities, *opp)
			e.report(ctx, *opp)
		}

		if i < len(candidates)-1 {
			if err := e.pacer.Wait(ctx); err != nil {
				return res, err
			}
		}
	}

	e.logger.Info("scan finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("evaluated", res.Evaluated),
		zap.Int("skipped", res.Skipped),
		zap.Int("opportunities", len(res.Opportunities)),
		zap.Int("new_bad_pairs", len(res.NewBadPairs)))

	return res, nil
}

// checkEligible applies the filters in order; the first match wins.
func checkEligible(start, cand token.Token, known *badpair.Set) (skipReason, bool) {
	switch {
	case token.SameAddress(cand.Address, start.Address):
		return skipSelf, true
	case cand.ChainID != start.ChainID:
		return skipCrossChain, true
	case known.Contains(start.Symbol, cand.Symbol):
		return skipKnownBad, true
	}
	return "", false
}

// roundTrip returns nil, nil when both legs quote but nothing is gained.
func (e *Evaluator) roundTrip(ctx context.Context, start, cand token.Token, amount *big.Int) (*Opportunity, error) {
	mid, err := e.quoter.Quote(ctx, start, cand, amount)
	if err != nil {
		return nil, err
	}

	final, err := e.quoter.Quote(ctx, cand, start, mid)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("round trip quoted",
		zap.String("start", start.Symbol),
		zap.String("candidate", cand.Symbol),
		zap.String("amount_in", token.FormatUnits(amount, start.Decimals)),
		zap.String("intermediate", token.FormatUnits(mid, cand.Decimals)),
		zap.String("amount_out", token.FormatUnits(final, start.Decimals)))

	if final.Cmp(amount) <= 0 {
		return nil, nil
	}

	return &Opportunity{
		Start:        start,
		Candidate:    cand,
		StartAmount:  new(big.Int).Set(amount),
		Intermediate: mid,
		Final:        final,
		Percent:      PctIncrease(amount, final),
	}, nil
}

func (e *Evaluator) report(ctx context.Context, opp Opportunity) {
	e.logger.Info("arbitrage opportunity",
		zap.String("start", opp.Start.Symbol),
		zap.String("candidate", opp.Candidate.Symbol),
		zap.String("address", opp.Candidate.Address),
		zap.String("pct", opp.Percent))

	for _, r := range e.reporters {
		if err := r.Report(ctx, opp); err != nil {
			e.logger.Warn("report failed", zap.Error(err))
		}
	}
}
