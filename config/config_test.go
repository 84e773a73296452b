package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestLoadDefaults
func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvPrefix+"_CONFIG_DIR", t.TempDir())
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.1inch.dev/swap/v6.0", cfg.OneInch.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.OneInch.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Scan.Delay)
	assert.Equal(t, "file", cfg.BadPairs.Backend)
	assert.Equal(t, "bad_pairs.json", cfg.BadPairs.File)
	assert.False(t, cfg.BadPairs.Persist)
	assert.Equal(t, "none", cfg.RateLimit.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}

// go test -v --run TestLoadFileAndEnv
func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
oneinch:
  base_url: http://localhost:9999
  timeout: 5s
scan:
  delay: 1s
  token_list_dir: /tmp/lists
badpairs:
  backend: sqlite
  persist: true
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv(EnvPrefix+"_CONFIG_DIR", dir)
	t.Setenv(EnvPrefix+"_ONEINCH_API_KEY", "secret")
	t.Setenv(EnvPrefix+"_SCAN_DELAY", "250ms")
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.OneInch.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.OneInch.Timeout)
	assert.Equal(t, "secret", cfg.OneInch.APIKey)
	assert.Equal(t, 250*time.Millisecond, cfg.Scan.Delay)
	assert.Equal(t, "/tmp/lists", cfg.Scan.TokenListDir)
	assert.Equal(t, "sqlite", cfg.BadPairs.Backend)
	assert.True(t, cfg.BadPairs.Persist)
}

// go test -v --run TestPostgresDSN
func TestPostgresDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "yourpw",
		DBName:   "arbscan",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=yourpw dbname=arbscan sslmode=disable TimeZone=UTC",
		cfg.DSN("dev"))
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=yourpw dbname=postgres sslmode=disable TimeZone=UTC",
		cfg.AdminDSN("dev"))
}

// go test -v --run TestPostgresDSNProd
func TestPostgresDSNProd(t *testing.T) {
	params := map[string]string{
		ssmDBHost:     "db.internal",
		ssmDBUser:     "scanner",
		ssmDBPassword: "fromssm",
	}
	orig := parameterLookup
	parameterLookup = func(name string, _ bool) string { return params[name] }
	t.Cleanup(func() { parameterLookup = orig })

	cfg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "yourpw",
		DBName:   "arbscan",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5432 user=scanner password=fromssm dbname=arbscan sslmode=require",
		cfg.DSN("prod"))
	assert.Equal(t,
		"host=db.internal port=5432 user=scanner password=fromssm dbname=postgres sslmode=require",
		cfg.AdminDSN("prod"))
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
