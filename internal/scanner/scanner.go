package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"arbscanner/config"
	"arbscanner/internal/arbitrage"
	"arbscanner/internal/badpair"
	"arbscanner/internal/token"
	"arbscanner/pkg/oneinch"
	"arbscanner/pkg/storage/redis"
	"arbscanner/pkg/tokenlist"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type tokenSource interface {
	Load(ctx context.Context, name string) ([]token.Token, error)
}

// Scanner wires the configured collaborators around one arbitrage.Evaluator run.
type Scanner struct {
	cfg     *config.Config
	logger  *zap.Logger
	out     io.Writer
	store   badpair.Store
	tokens  tokenSource
	eval    *arbitrage.Evaluator
	redis   *redis.Client
	closers []func() error
}

// New builds a Scanner from cfg. The report and the final bad pair dump go to out.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) (*Scanner, error) {
	s := &Scanner{
		cfg:    cfg,
		logger: logger,
		out:    out,
		tokens: tokenlist.NewLoader(cfg.Scan.TokenListDir, cfg.Scan.TokenListURL, cfg.OneInch.Timeout),
	}

	store, closeStore, err := newBadPairStore(ctx, cfg, func() (*redis.Client, error) { return s.redisClient(ctx) })
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("bad pair store: %w", err)
	}
	s.store = store
	s.closers = append(s.closers, closeStore)

	var quoter arbitrage.Quoter = oneinch.NewRESTClient(cfg.OneInch.BaseURL, cfg.OneInch.APIKey, cfg.OneInch.Timeout)
	switch cfg.RateLimit.Backend {
	case "", "none":
	case "redis":
		client, err := s.redisClient(ctx)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		quoter = arbitrage.Throttled(quoter,
			redis.NewRateLimiter(client, cfg.RateLimit.Key, cfg.RateLimit.Limit, cfg.RateLimit.Window))
	default:
		s.Close()
		return nil, fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
	}

	reporters := []arbitrage.Reporter{arbitrage.NewConsoleReporter(out)}
	if cfg.Notify.DiscordWebhookURL != "" {
		reporters = append(reporters, arbitrage.NewDiscordReporter(cfg.Notify.DiscordWebhookURL))
	}

	s.eval = arbitrage.NewEvaluator(quoter, arbitrage.FixedDelay{Delay: cfg.Scan.Delay}, logger, reporters...)
	return s, nil
}

// redisClient connects once and shares the client between store and limiter.
func (s *Scanner) redisClient(ctx context.Context) (*redis.Client, error) {
	if s.redis != nil {
		return s.redis, nil
	}
	client, err := redis.New(ctx, s.cfg.Redis)
	if err != nil {
		return nil, err
	}
	s.redis = client
	s.closers = append(s.closers, client.Close)
	return client, nil
}

// Run loads the candidate list and known bad pairs, evaluates every candidate,
// then prints the full bad pair list. The list is written back to the store
// only when badpairs.persist is enabled.
func (s *Scanner) Run(ctx context.Context, args Args) (*arbitrage.Result, error) {
	log := s.logger.With(zap.String("run_id", uuid.NewString()))
	log.Info("scan starting",
		zap.String("start", args.Start.Symbol),
		zap.String("amount", args.Amount.String()),
		zap.String("amount_units", token.FormatUnits(args.Amount, args.Start.Decimals)),
		zap.String("list", args.ListName),
		zap.String("backend", s.cfg.BadPairs.Backend))

	candidates, err := s.tokens.Load(ctx, args.ListName)
	if err != nil {
		return nil, err
	}

	known, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bad pairs: %w", err)
	}
	log.Info("inputs loaded", zap.Int("candidates", len(candidates)), zap.Int("bad_pairs", len(known)))

	res, err := s.eval.Run(ctx, args.Start, args.Amount, candidates, known)
	if err != nil {
		return res, err
	}

	dump, err := json.Marshal(res.BadPairs)
	if err != nil {
		return res, fmt.Errorf("encode bad pairs: %w", err)
	}
	fmt.Fprintf(s.out, "Bad Pairs %s\n", dump)

	if s.cfg.BadPairs.Persist && len(res.NewBadPairs) > 0 {
		if err := s.store.Save(ctx, res.BadPairs.Pairs()); err != nil {
			return res, fmt.Errorf("save bad pairs: %w", err)
		}
		log.Info("bad pairs saved", zap.Int("new", len(res.NewBadPairs)))
	}

	return res, nil
}

// Close releases store and redis connections.
func (s *Scanner) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}
