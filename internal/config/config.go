package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Validation errors.
var (
	ErrInvalidPort      = errors.New("PORT must be between 1 and 65535")
	ErrInvalidOrigin    = errors.New("RESUME_ORIGIN must be an absolute http(s) URL")
	ErrInvalidGinMode   = errors.New("GIN_MODE must be debug, release or test")
	ErrInvalidLogFormat = errors.New("LOG_FORMAT must be json or text")
	ErrInvalidLogLevel  = errors.New("LOG_LEVEL must be debug, info, warn or error")
	ErrMissingDSN       = errors.New("METRICS_DSN is required when metrics are enabled")
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Resume  ResumeConfig  `yaml:"resume"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"HOST"`
	Port         int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	// Mode is the gin mode: debug, release or test.
	Mode      string `yaml:"mode" envconfig:"GIN_MODE"`
	StaticDir string `yaml:"static_dir" envconfig:"STATIC_DIR"`
	ImagesDir string `yaml:"images_dir" envconfig:"IMAGES_DIR"`
}

// ResumeConfig holds resume preview configuration.
type ResumeConfig struct {
	// Origin is where the resume assets are probed. Empty means the
	// server probes itself.
	Origin string `yaml:"origin" envconfig:"RESUME_ORIGIN"`
	// ProbeTimeout bounds each probe request. Zero leaves requests
	// unbounded.
	ProbeTimeout time.Duration `yaml:"probe_timeout" envconfig:"RESUME_PROBE_TIMEOUT"`
}

// MetricsConfig holds visitor metrics configuration.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"METRICS_ENABLED"`
	// DSN is the SQLite data source. The default keeps everything in
	// memory for the lifetime of the process.
	DSN          string        `yaml:"dsn" envconfig:"METRICS_DSN"`
	Retention    time.Duration `yaml:"retention" envconfig:"METRICS_RETENTION"`
	StatsEnabled bool          `yaml:"stats_enabled" envconfig:"METRICS_STATS_ENABLED"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			Mode:         "release",
			StaticDir:    "./static",
			ImagesDir:    "./images",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			DSN:       "file:metrics?mode=memory&cache=shared",
			Retention: 30 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from the defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return ErrInvalidGinMode
	}
	if c.Resume.Origin != "" {
		u, err := url.Parse(c.Resume.Origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidOrigin
		}
	}
	if c.Metrics.Enabled && c.Metrics.DSN == "" {
		return ErrMissingDSN
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return ErrInvalidLogFormat
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ProbeOrigin returns the origin the resume prober should target.
func (c *Config) ProbeOrigin() string {
	if c.Resume.Origin != "" {
		return strings.TrimRight(c.Resume.Origin, "/")
	}
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Server.Port))
}

// SlogLevel parses the configured level.
func (c *LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, ErrInvalidLogLevel
}

// NewLogger builds the process logger.
func (c *LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
