package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"arbscanner/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Client struct {
	DB *gorm.DB
}

func open(dialector gorm.Dialector) (*Client, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	return &Client{DB: db}, nil
}

// NewPostgresClient connects to Postgres using a libpq style DSN.
func NewPostgresClient(dsn string) (*Client, error) {
	c, err := open(postgres.Open(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return c, nil
}

// NewSQLiteClient opens (or creates) a sqlite database file.
// Use "file::memory:?cache=shared" for a throwaway in-memory database.
func NewSQLiteClient(path string) (*Client, error) {
	c, err := open(sqlite.Open(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	return c, nil
}

// InitializePostgres connects to Postgres, optionally creates the DB, and runs AutoMigrate.
func InitializePostgres(ctx context.Context, cfg config.PostgresConfig, env string, createDB bool) (*Client, error) {
	if createDB {
		if err := CreateDatabase(cfg, env); err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	client, err := NewPostgresClient(cfg.DSN(env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := client.prepare(ctx, cfg); err != nil {
		return nil, err
	}
	return client, nil
}

// InitializeSQLite opens the sqlite file at path and runs AutoMigrate.
func InitializeSQLite(ctx context.Context, path string) (*Client, error) {
	client, err := NewSQLiteClient(path)
	if err != nil {
		return nil, err
	}

	if err := client.prepare(ctx, config.PostgresConfig{}); err != nil {
		return nil, err
	}
	return client, nil
}

// prepare checks the connection, applies pool limits and migrates the schema.
// The client is closed when any step fails.
func (c *Client) prepare(ctx context.Context, pool config.PostgresConfig) error {
	if !c.IsHealthy(ctx) {
		c.Close()
		return errors.New("database not reachable")
	}

	if err := c.ApplyPoolSettings(pool); err != nil {
		c.Close()
		return err
	}

	if err := c.AutoMigrateBadPairRecord(); err != nil {
		c.Close()
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// ApplyPoolSettings copies the connection pool limits onto the underlying sql.DB.
func (c *Client) ApplyPoolSettings(cfg config.PostgresConfig) error {
	db, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return nil
}

func (c *Client) AutoMigrateBadPairRecord() error {
	if err := c.DB.AutoMigrate(&BadPairRecord{}); err != nil {
		return fmt.Errorf("auto-migrate bad pair table: %w", err)
	}
	return nil
}

// IsHealthy pings the underlying connection.
func (c *Client) IsHealthy(ctx context.Context) bool {
	db, err := c.DB.DB()
	if err != nil {
		return false
	}
	return db.PingContext(ctx) == nil
}

func (c *Client) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to retrieve raw DB: %w", err)
	}
	return db.Close()
}
