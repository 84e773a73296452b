package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (e.g. ARBSCAN_ONEINCH_API_KEY).
const EnvPrefix = "ARBSCAN"

type Config struct {
	Environment string          `mapstructure:"environment"` // "dev" or "prod"
	OneInch     OneInchConfig   `mapstructure:"oneinch"`
	Scan        ScanConfig      `mapstructure:"scan"`
	BadPairs    BadPairsConfig  `mapstructure:"badpairs"`
	RateLimit   RateLimitConfig `mapstructure:"ratelimit"`
	Notify      NotifyConfig    `mapstructure:"notify"`
	Log         LogConfig       `mapstructure:"log"`
	Postgres    PostgresConfig  `mapstructure:"postgres"`
	Redis       RedisConfig     `mapstructure:"redis"`
	S3          S3Config        `mapstructure:"s3"`
}

type OneInchConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ScanConfig struct {
	Delay        time.Duration `mapstructure:"delay"`          // pause between evaluated candidates
	TokenListDir string        `mapstructure:"token_list_dir"` // directory holding <name>.json lists
	TokenListURL string        `mapstructure:"token_list_url"` // optional remote base URL, wins over the dir
}

// BadPairsConfig selects where the exclusion list lives.
type BadPairsConfig struct {
	Backend    string `mapstructure:"backend"`     // file, memory, postgres, sqlite, redis, s3
	File       string `mapstructure:"file"`        // file backend path
	SQLitePath string `mapstructure:"sqlite_path"` // sqlite backend path
	RedisKey   string `mapstructure:"redis_key"`   // redis backend list key
	S3Key      string `mapstructure:"s3_key"`      // s3 backend object key
	Persist    bool   `mapstructure:"persist"`     // write the updated set back after the run
}

type RateLimitConfig struct {
	Backend string        `mapstructure:"backend"` // "none" or "redis"
	Key     string        `mapstructure:"key"`
	Limit   int           `mapstructure:"limit"` // quote requests per window
	Window  time.Duration `mapstructure:"window"`
}

type NotifyConfig struct {
	DiscordWebhookURL string `mapstructure:"discord_webhook_url"`
}

// Options defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type S3Config struct {
	Region         string `mapstructure:"region"`
	Bucket         string `mapstructure:"bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "dev")

	v.SetDefault("oneinch.base_url", "https://api.1inch.dev/swap/v6.0")
	v.SetDefault("oneinch.api_key", "")
	v.SetDefault("oneinch.timeout", 2*time.Second)

	// Two quote requests per candidate; 500ms keeps us near 4 req/s, under the 400/min cap.
	v.SetDefault("scan.delay", 500*time.Millisecond)
	v.SetDefault("scan.token_list_dir", ".")
	v.SetDefault("scan.token_list_url", "")

	v.SetDefault("badpairs.backend", "file")
	v.SetDefault("badpairs.file", "bad_pairs.json")
	v.SetDefault("badpairs.sqlite_path", "bad_pairs.db")
	v.SetDefault("badpairs.redis_key", "arbscan:bad_pairs")
	v.SetDefault("badpairs.s3_key", "bad_pairs.json")
	v.SetDefault("badpairs.persist", false)

	v.SetDefault("ratelimit.backend", "none")
	v.SetDefault("ratelimit.key", "oneinch")
	v.SetDefault("ratelimit.limit", 6)
	v.SetDefault("ratelimit.window", time.Second)

	v.SetDefault("notify.discord_webhook_url", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.dbname", "arbscan")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.force_path_style", false)
}

// Load loads application configuration using Viper.
// It reads config.yaml when one is found and overrides it with environment variables.
// A missing config file is not an error; defaults cover every key.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")

	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if ex, err := os.Executable(); err == nil {
		v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
	}

	// Support environment variables with dot notation (e.g., ARBSCAN_ONEINCH_API_KEY)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
