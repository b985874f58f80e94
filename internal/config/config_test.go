package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "serpentaware.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
addr: ":9090"
store:
  driver: sqlite
  dsn: /tmp/snakes.db
rate_limit:
  rps: 5
  burst: 10
shutdown_timeout: 3s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/snakes.db", cfg.Store.DSN)
	assert.Equal(t, 5.0, cfg.RateLimit.RPS)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.SeedOnStart, "unset keys keep their default")
}

func TestLoadEmptyDriverMeansMemory(t *testing.T) {
	cfg, err := Load(writeFile(t, "store:\n  driver: \"\"\n  dsn: ignored.db\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)

	t.Setenv("SERPENTAWARE_STORE_DRIVER", "")
	cfg, err = Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)

	c := Default()
	c.Store.Driver = ""
	assert.NoError(t, c.Validate())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERPENTAWARE_ADDR", ":7000")
	t.Setenv("SERPENTAWARE_STORE_DRIVER", "postgres")
	t.Setenv("SERPENTAWARE_STORE_DSN", "postgres://localhost/snakes")
	t.Setenv("SERPENTAWARE_RATE_LIMIT_RPS", "0")

	cfg, err := Load(writeFile(t, "addr: \":9090\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/snakes", cfg.Store.DSN)
	assert.Zero(t, cfg.RateLimit.RPS)
}

func TestLoadBadEnvNumber(t *testing.T) {
	t.Setenv("SERPENTAWARE_RATE_LIMIT_RPS", "fast")
	_, err := Load(writeFile(t, ""))
	assert.ErrorContains(t, err, "SERPENTAWARE_RATE_LIMIT_RPS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"driver", func(c *Config) { c.Store.Driver = "mongo" }, "unknown store driver"},
		{"addr", func(c *Config) { c.Addr = "" }, "addr"},
		{"negative rate", func(c *Config) { c.RateLimit.RPS = -1 }, "negative"},
		{"burst", func(c *Config) { c.RateLimit.Burst = 0 }, "burst"},
		{"half tls", func(c *Config) { c.TLS.CertFile = "cert.pem" }, "tls"},
		{"watch without path", func(c *Config) { c.Dataset.Watch = true }, "dataset.watch"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}

func TestTLSEnabled(t *testing.T) {
	assert.False(t, TLSConfig{}.Enabled())
	assert.True(t, TLSConfig{CertFile: "c", KeyFile: "k"}.Enabled())
}
