// Package config loads server settings from serpentaware.yaml, then applies
// environment overrides. Command-line flags are layered on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"serpentaware/internal/utils"
)

// DefaultFile is looked up at the project root when no path is given.
const DefaultFile = "serpentaware.yaml"

type Config struct {
	Addr        string          `yaml:"addr"`
	Store       StoreConfig     `yaml:"store"`
	Dataset     DatasetConfig   `yaml:"dataset"`
	SeedOnStart bool            `yaml:"seed_on_start"`
	Admin       AdminConfig     `yaml:"admin"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Log         LogConfig       `yaml:"log"`
	TLS         TLSConfig       `yaml:"tls"`
	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"` // memory|sqlite|postgres
	DSN    string `yaml:"dsn"`    // file path for sqlite, URL for postgres
}

type DatasetConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

type AdminConfig struct {
	TokenHashFile string `yaml:"token_hash_file"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type TLSConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// Enabled reports whether both halves of the key pair are configured.
func (t TLSConfig) Enabled() bool { return t.CertFile != "" && t.KeyFile != "" }

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Addr:            ":8080",
		Store:           StoreConfig{Driver: "memory"},
		SeedOnStart:     true,
		RateLimit:       RateLimitConfig{RPS: 20, Burst: 40},
		Log:             LogConfig{Level: "info"},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads path (or DefaultFile at the project root when path is empty) over
// the defaults, then applies environment overrides. A missing default file is
// not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = filepath.Join(utils.GetProjectRoot(), DefaultFile)
	}
	data, err := os.ReadFile(utils.ExpandPath(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memory"
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SERPENTAWARE_ADDR":                  &c.Addr,
		"SERPENTAWARE_STORE_DRIVER":          &c.Store.Driver,
		"SERPENTAWARE_STORE_DSN":             &c.Store.DSN,
		"SERPENTAWARE_DATASET":               &c.Dataset.Path,
		"SERPENTAWARE_ADMIN_TOKEN_HASH_FILE": &c.Admin.TokenHashFile,
		"SERPENTAWARE_LOG_LEVEL":             &c.Log.Level,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	if v, ok := lookup("SERPENTAWARE_RATE_LIMIT_RPS"); ok {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("SERPENTAWARE_RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = rps
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	// An empty driver means memory, as in store.Open.
	switch c.Store.Driver {
	case "", "memory", "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		errs = append(errs, errors.New("rate_limit.burst must be positive when rps is set"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("tls needs both cert_file and key_file"))
	}
	if c.Dataset.Watch && c.Dataset.Path == "" {
		errs = append(errs, errors.New("dataset.watch requires dataset.path"))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("shutdown_timeout must not be negative"))
	}
	return errors.Join(errs...)
}
