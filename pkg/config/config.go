// Package config loads and validates lexfreq configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Analysis, Reader, Output, Logging, Metrics, Redis, Kafka).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/lexfreq/pkg/logger"
)

// Config is the top-level application configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Reader   ReaderConfig   `yaml:"reader"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

// AnalysisConfig holds the report thresholds and exclusion sources.
type AnalysisConfig struct {
	MinWords    int      `yaml:"minWords"`
	MinFiles    int      `yaml:"minFiles"`
	MinLength   int      `yaml:"minLength"`
	Exclude     []string `yaml:"exclude"`
	ExcludeFile string   `yaml:"excludeFile"`
}

// ReaderConfig controls how input files are loaded.
type ReaderConfig struct {
	Concurrency int    `yaml:"concurrency"`
	Encoding    string `yaml:"encoding"`
}

// OutputConfig controls the report format on stdout.
type OutputConfig struct {
	Format string `yaml:"format"`
	Color  string `yaml:"color"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile written at exit.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Textfile string `yaml:"textfile"`
}

// RedisConfig holds the connection and caching parameters of the shared
// stem cache.
type RedisConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	PoolSize  int           `yaml:"poolSize"`
	CacheTTL  time.Duration `yaml:"cacheTTL"`
	KeyPrefix string        `yaml:"keyPrefix"`
	Timeout   time.Duration `yaml:"timeout"`
}

// KafkaConfig holds the broker and topic the report is published to.
type KafkaConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Brokers        []string      `yaml:"brokers"`
	Topic          string        `yaml:"topic"`
	PublishTimeout time.Duration `yaml:"publishTimeout"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadEnvFile populates the process environment from a dotenv file. Variables
// that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// Default returns a Config with the stock thresholds of the command line tool.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MinWords:  2,
			MinFiles:  2,
			MinLength: 6,
		},
		Reader: ReaderConfig{
			Concurrency: 4,
			Encoding:    "utf-8",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Textfile: "lexfreq.prom",
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			PoolSize:  4,
			CacheTTL:  24 * time.Hour,
			KeyPrefix: "lexfreq:stem:",
			Timeout:   200 * time.Millisecond,
		},
		Kafka: KafkaConfig{
			Brokers:        []string{"localhost:9092"},
			Topic:          "lexfreq-report",
			PublishTimeout: 10 * time.Second,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Analysis.MinWords < 0:
		return apperrors.Newf(apperrors.ErrInvalidInput, 2, "words threshold must not be negative, got %d", c.Analysis.MinWords)
	case c.Analysis.MinFiles < 0:
		return apperrors.Newf(apperrors.ErrInvalidInput, 2, "filenum threshold must not be negative, got %d", c.Analysis.MinFiles)
	case c.Analysis.MinLength < 0:
		return apperrors.Newf(apperrors.ErrInvalidInput, 2, "length threshold must not be negative, got %d", c.Analysis.MinLength)
	case c.Reader.Concurrency < 1:
		return apperrors.Newf(apperrors.ErrInvalidInput, 2, "reader concurrency must be at least 1, got %d", c.Reader.Concurrency)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return apperrors.Newf(apperrors.ErrInvalidInput, 2, "unknown output format %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return apperrors.Newf(apperrors.ErrInvalidInput, 2, "unknown color mode %q", c.Output.Color)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return apperrors.New(apperrors.ErrInvalidInput, 2, err.Error())
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return apperrors.Newf(apperrors.ErrInvalidInput, 2, "unknown log format %q", c.Logging.Format)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return apperrors.New(apperrors.ErrInvalidInput, 2, "kafka publishing needs brokers and a topic")
	}
	return nil
}

// applyEnvOverrides reads LF_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LF_MIN_WORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MinWords = n
		}
	}
	if v := os.Getenv("LF_MIN_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MinFiles = n
		}
	}
	if v := os.Getenv("LF_MIN_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MinLength = n
		}
	}
	if v := os.Getenv("LF_EXCLUDE_FILE"); v != "" {
		cfg.Analysis.ExcludeFile = v
	}
	if v := os.Getenv("LF_READER_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Reader.Concurrency = n
		}
	}
	if v := os.Getenv("LF_READER_ENCODING"); v != "" {
		cfg.Reader.Encoding = v
	}
	if v := os.Getenv("LF_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("LF_OUTPUT_COLOR"); v != "" {
		cfg.Output.Color = v
	}
	if v := os.Getenv("LF_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LF_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("LF_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Textfile = v
	}
	if v := os.Getenv("LF_REDIS_ADDR"); v != "" {
		cfg.Redis.Enabled = true
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("LF_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("LF_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Enabled = true
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("LF_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
}
