package scanner

import (
	"context"
	"fmt"

	"arbscanner/config"
	"arbscanner/internal/badpair"
	"arbscanner/pkg/storage/redis"
	"arbscanner/pkg/storage/s3"
	"arbscanner/pkg/storage/sqlstore"
)

// newBadPairStore builds the configured backend and a closer for its connection.
func newBadPairStore(ctx context.Context, cfg *config.Config, rdb func() (*redis.Client, error)) (badpair.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.BadPairs.Backend {
	case "", "file":
		return badpair.NewFileStore(cfg.BadPairs.File), noop, nil

	case "memory":
		return badpair.NewMemoryStore(), noop, nil

	case "postgres":
		client, err := sqlstore.InitializePostgres(ctx, cfg.Postgres, cfg.Environment, true)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.NewBadPairStore(client), client.Close, nil

	case "sqlite":
		client, err := sqlstore.InitializeSQLite(ctx, cfg.BadPairs.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.NewBadPairStore(client), client.Close, nil

	case "redis":
		client, err := rdb()
		if err != nil {
			return nil, nil, err
		}
		return redis.NewBadPairStore(client, cfg.BadPairs.RedisKey), noop, nil

	case "s3":
		if cfg.S3.Bucket == "" {
			return nil, nil, fmt.Errorf("s3 backend needs s3.bucket")
		}
		client, err := s3.NewClient(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return s3.NewBadPairStore(client, cfg.S3.Bucket, cfg.BadPairs.S3Key), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown bad pairs backend %q", cfg.BadPairs.Backend)
}
