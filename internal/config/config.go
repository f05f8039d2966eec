package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/thelivingdead/dsfetch/internal/catalog"
)

// Config defines configuration for the dsfetch CLI.
type Config struct {
	// Dir is the target directory; downloaded files land flat in it,
	// named by the final path segment of their URL.
	Dir string

	// ChunkSize is the transfer buffer size. Memory use per transfer
	// is bounded by this regardless of file size.
	ChunkSize int64

	// Progress enables the progress bar.
	Progress bool

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration

	// Retry defines retry behavior for establishing requests.
	Retry RetryConfig

	// Catalog is the ordered list of files to fetch and verify.
	Catalog catalog.Catalog
}

// RetryConfig defines retry behavior.
type RetryConfig struct {
	Attempts   int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		ChunkSize: 32 * 1024,
		Timeout:   30 * time.Second,
		Retry: RetryConfig{
			Attempts:   5,
			Backoff:    time.Second,
			MaxBackoff: 30 * time.Second,
		},
	}
}

// yamlConfig is used for YAML unmarshaling with human-readable sizes
// and durations as strings.
type yamlConfig struct {
	Dir       string          `yaml:"dir"`
	ChunkSize string          `yaml:"chunk_size"`
	Progress  bool            `yaml:"progress"`
	Timeout   string          `yaml:"timeout"`
	Retry     yamlRetryConfig `yaml:"retry"`
	Catalog   catalog.Catalog `yaml:"catalog"`
}

type yamlRetryConfig struct {
	Attempts   int    `yaml:"attempts"`
	Backoff    string `yaml:"backoff"`
	MaxBackoff string `yaml:"max_backoff"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Dir != "" {
		cfg.Dir = yc.Dir
	}
	if yc.ChunkSize != "" {
		size, err := humanize.ParseBytes(yc.ChunkSize)
		if err != nil {
			return Config{}, fmt.Errorf("parse chunk_size: %w", err)
		}
		cfg.ChunkSize = int64(size)
	}
	cfg.Progress = yc.Progress
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if yc.Retry.Attempts != 0 {
		cfg.Retry.Attempts = yc.Retry.Attempts
	}
	if yc.Retry.Backoff != "" {
		d, err := time.ParseDuration(yc.Retry.Backoff)
		if err != nil {
			return Config{}, fmt.Errorf("parse retry.backoff: %w", err)
		}
		cfg.Retry.Backoff = d
	}
	if yc.Retry.MaxBackoff != "" {
		d, err := time.ParseDuration(yc.Retry.MaxBackoff)
		if err != nil {
			return Config{}, fmt.Errorf("parse retry.max_backoff: %w", err)
		}
		cfg.Retry.MaxBackoff = d
	}
	cfg.Catalog = yc.Catalog

	return cfg, nil
}

// LoadFromEnv loads configuration overrides from environment
// variables. Environment variables use the DSFETCH_ prefix; the
// catalog itself comes only from the config file.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("DSFETCH_DIR"); v != "" {
		c.Dir = v
	}
	if v := os.Getenv("DSFETCH_CHUNK_SIZE"); v != "" {
		size, err := humanize.ParseBytes(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_CHUNK_SIZE: %w", err)
		}
		c.ChunkSize = int64(size)
	}
	if v := os.Getenv("DSFETCH_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("DSFETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("DSFETCH_RETRY_ATTEMPTS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return fmt.Errorf("parse DSFETCH_RETRY_ATTEMPTS: %w", err)
		}
		c.Retry.Attempts = n
	}
	if v := os.Getenv("DSFETCH_RETRY_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_RETRY_BACKOFF: %w", err)
		}
		c.Retry.Backoff = d
	}
	if v := os.Getenv("DSFETCH_RETRY_MAX_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DSFETCH_RETRY_MAX_BACKOFF: %w", err)
		}
		c.Retry.MaxBackoff = d
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return errors.New("config: target dir is required")
	}
	if !filepath.IsAbs(c.Dir) {
		return errors.New("config: target dir must be an absolute path")
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	if c.Timeout < 0 {
		return errors.New("config: timeout must not be negative")
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Dir != "" {
		c.Dir = override.Dir
	}
	if override.ChunkSize != 0 {
		c.ChunkSize = override.ChunkSize
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.Retry.Attempts != 0 {
		c.Retry.Attempts = override.Retry.Attempts
	}
	if override.Retry.Backoff != 0 {
		c.Retry.Backoff = override.Retry.Backoff
	}
	if override.Retry.MaxBackoff != 0 {
		c.Retry.MaxBackoff = override.Retry.MaxBackoff
	}
	if len(override.Catalog) != 0 {
		c.Catalog = override.Catalog
	}
	return c
}
