// Package config loads the tunable parameters of the catalog host from
// immo.yaml, an optional .env file and IMMO_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Kush-Singh-26/immo/catalog/pricerange"
	"github.com/Kush-Singh-26/immo/catalog/session"
)

// DefaultFile is the configuration file looked up by default.
const DefaultFile = "immo.yaml"

// Config contains all tunable parameters
type Config struct {
	// Catalog source: a local YAML/JSON file or an http(s) URL
	Catalog  string   `yaml:"catalog"`
	CacheDir string   `yaml:"cacheDir"`
	Communes []string `yaml:"communes"` // overrides the built-in commune list

	SuggestLimit int         `yaml:"suggestLimit"` // default: 8
	Price        PriceConfig `yaml:"price"`

	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Fetch  FetchConfig  `yaml:"fetch"`

	CacheDBTimeout time.Duration `yaml:"cacheDBTimeout"` // BoltDB timeout (default: 10s)
}

// PriceConfig is the fallback range used when no listing price parses.
type PriceConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ServerConfig holds the HTTP host settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ShutdownTimeout  time.Duration `yaml:"shutdownTimeout"`  // default: 5s
	DebounceDuration time.Duration `yaml:"debounceDuration"` // catalog watcher debounce (default: 500ms)
	CORSOrigins      []string      `yaml:"corsOrigins"`
	Watch            bool          `yaml:"watch"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// FetchConfig tunes remote catalog downloads.
type FetchConfig struct {
	Retries int           `yaml:"retries"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog:      "listings.yaml",
		CacheDir:     ".immo-cache",
		SuggestLimit: 8,
		Price: PriceConfig{
			Min: pricerange.DefaultMin,
			Max: pricerange.DefaultMax,
		},
		Server: ServerConfig{
			Host:             "localhost",
			Port:             8080,
			ShutdownTimeout:  5 * time.Second,
			DebounceDuration: 500 * time.Millisecond,
			CORSOrigins:      []string{"*"},
			Watch:            true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Fetch: FetchConfig{
			Retries: 3,
			Timeout: 15 * time.Second,
		},
		CacheDBTimeout: 10 * time.Second,
	}
}

// Load reads path from fs, then applies envFile (if present) and the process
// environment. A missing config file yields the defaults. A malformed file
// yields the defaults and the parse error.
func Load(fs afero.Fs, path, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	var loadErr error
	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			cfg = DefaultConfig()
			loadErr = fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		loadErr = fmt.Errorf("read %s: %w", path, err)
	}

	dotenv, err := readDotEnv(fs, envFile)
	if err != nil && loadErr == nil {
		loadErr = err
	}
	cfg.ApplyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	cfg.validate()
	return cfg, loadErr
}

func readDotEnv(fs afero.Fs, path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return env, nil
}

// ApplyEnv overrides fields from IMMO_* variables. Unparsable values are
// ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("IMMO_CATALOG"); ok && v != "" {
		c.Catalog = v
	}
	if v, ok := lookup("IMMO_CACHE_DIR"); ok && v != "" {
		c.CacheDir = v
	}
	if v, ok := lookup("IMMO_HOST"); ok && v != "" {
		c.Server.Host = v
	}
	if v, ok := lookup("IMMO_PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v, ok := lookup("IMMO_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("IMMO_LOG_JSON"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.JSON = b
		}
	}
}

// validate ensures configuration values are within reasonable bounds
func (c *Config) validate() {
	if c.SuggestLimit < 1 {
		c.SuggestLimit = 1
	}
	if c.SuggestLimit > 50 {
		c.SuggestLimit = 50
	}

	if c.Price.Min < 0 {
		c.Price.Min = 0
	}
	if c.Price.Max <= c.Price.Min {
		c.Price = PriceConfig{Min: pricerange.DefaultMin, Max: pricerange.DefaultMax}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		c.Server.Port = 8080
	}
	if c.Server.ShutdownTimeout < 1*time.Second {
		c.Server.ShutdownTimeout = 1 * time.Second
	}
	if c.Server.ShutdownTimeout > 60*time.Second {
		c.Server.ShutdownTimeout = 60 * time.Second
	}
	if c.Server.DebounceDuration < 10*time.Millisecond {
		c.Server.DebounceDuration = 10 * time.Millisecond
	}
	if c.Server.DebounceDuration > 5*time.Second {
		c.Server.DebounceDuration = 5 * time.Second
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(c.Log.Level)
	default:
		c.Log.Level = "info"
	}

	if c.Fetch.Retries < 0 {
		c.Fetch.Retries = 0
	}
	if c.Fetch.Retries > 10 {
		c.Fetch.Retries = 10
	}
	if c.Fetch.Timeout < 1*time.Second {
		c.Fetch.Timeout = 1 * time.Second
	}
	if c.CacheDBTimeout < 1*time.Second {
		c.CacheDBTimeout = 1 * time.Second
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// FallbackBounds returns the configured default price range.
func (c *Config) FallbackBounds() pricerange.Bounds {
	return pricerange.Bounds{
		Min:  c.Price.Min,
		Max:  c.Price.Max,
		Step: pricerange.StepFor(c.Price.Max - c.Price.Min),
	}
}

// SessionOptions returns the search session options.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Communes:       c.Communes,
		SuggestLimit:   c.SuggestLimit,
		FallbackBounds: c.FallbackBounds(),
	}
}
