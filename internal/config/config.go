package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// prometheus metrics endpoint
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	DBHost string `toml:"db_host"`
	DBPort string `toml:"db_port"`
	DBName string `toml:"db_name"`

	// redis (projected search index)
	RedisHost     string `toml:"redis_host"`
	RedisPort     int    `toml:"redis_port"`
	RedisPassword string `toml:"redis_password"`

	// hevy api
	HevyBaseURL string `toml:"hevy_base_url"`

	// embeddings api (openai compatible)
	EmbeddingsBaseURL string `toml:"embeddings_base_url"`
	EmbeddingsModel   string `toml:"embeddings_model"`

	// sync engine knobs
	SyncRecentWindowDays int    `toml:"sync_recent_window_days"`
	SyncRetryAttempts    int    `toml:"sync_retry_attempts"`
	SyncRetryBackoffMs   int    `toml:"sync_retry_backoff_ms"`
	SyncDeletionPolicy   string `toml:"sync_deletion_policy"` // ignore | soft_delete | hard_delete
	SyncRateLimitPerMin  int    `toml:"sync_rate_limit_per_min"`

	TracingEnabled bool `toml:"tracing_enabled"`
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.SyncRetryBackoffMs) * time.Millisecond
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	tomlBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var configToml Toml
	if err := toml.Unmarshal(tomlBytes, &configToml); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	cfg, err := configToml.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.Environment = env
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HevyBaseURL == "" {
		c.HevyBaseURL = "https://api.hevyapp.com/v1"
	}
	if c.EmbeddingsBaseURL == "" {
		c.EmbeddingsBaseURL = "https://api.openai.com/v1"
	}
	if c.EmbeddingsModel == "" {
		c.EmbeddingsModel = "text-embedding-3-small"
	}
	if c.SyncRecentWindowDays <= 0 {
		c.SyncRecentWindowDays = 30
	}
	if c.SyncRetryAttempts <= 0 {
		c.SyncRetryAttempts = 1
	}
	if c.SyncDeletionPolicy == "" {
		c.SyncDeletionPolicy = "ignore"
	}
	if c.SyncRateLimitPerMin <= 0 {
		c.SyncRateLimitPerMin = 10
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "9091"
	}
}
