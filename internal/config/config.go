package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/spf13/viper"
)

// DefaultCSVPath is read when no --csv flag is given.
const DefaultCSVPath = "Messier_data.csv"

// Config holds all service settings, populated from flags, SKYCHART_* environment
// variables, and the deployment conventions PORT and HOST.
type Config struct {
	CSVPath       string        `mapstructure:"csv"`
	RemoteURL     string        `mapstructure:"remote-url"`
	RemoteTimeout time.Duration `mapstructure:"remote-timeout"`
	StylesPath    string        `mapstructure:"styles"`
	UseSample     bool          `mapstructure:"sample"`
	Watch         bool          `mapstructure:"watch"`

	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`

	LogLevel       string `mapstructure:"log-level"`
	LogFormat      string `mapstructure:"log-format"`
	TracingEnabled bool   `mapstructure:"tracing"`
	ChartCacheSize int    `mapstructure:"chart-cache-size"`

	ShutdownTimeout time.Duration `mapstructure:"-"`
	// Deployed is true when PORT was set by the hosting platform.
	Deployed bool `mapstructure:"-"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewViper returns a viper instance with defaults and environment bindings.
// Callers bind command-line flags on top of it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("csv", DefaultCSVPath)
	v.SetDefault("remote-url", "")
	v.SetDefault("remote-timeout", "10s")
	v.SetDefault("styles", "")
	v.SetDefault("sample", true)
	v.SetDefault("watch", false)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8050)
	v.SetDefault("debug", false)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "json")
	v.SetDefault("tracing", false)
	v.SetDefault("chart-cache-size", 128)

	v.SetEnvPrefix("SKYCHART")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Shared ambient variables are honoured with or without the prefix.
	_ = v.BindEnv("log-level", "SKYCHART_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log-format", "SKYCHART_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("tracing", "SKYCHART_TRACING", "TRACING_ENABLED")

	return v
}

// Load decodes v into a Config, applies deployment overrides and validates
// the result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout = shutdownTimeout

	if err := applyDeployment(&cfg); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDeployment honours the hosting platform convention: PORT sets the port,
// binds all interfaces unless HOST says otherwise, and disables debug mode.
func applyDeployment(cfg *Config) error {
	if port := sharedcfg.EnvOrDefault("PORT", ""); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = n
		cfg.Host = "0.0.0.0"
		cfg.Debug = false
		cfg.Deployed = true
	}
	if host := sharedcfg.EnvOrDefault("HOST", ""); host != "" {
		cfg.Host = host
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Host == "" {
		return errors.New("host is required")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log-format must be json or text, got %q", c.LogFormat)
	}
	if c.RemoteURL != "" && c.RemoteTimeout <= 0 {
		return fmt.Errorf("remote-timeout must be positive, got %s", c.RemoteTimeout)
	}
	if c.ChartCacheSize < 0 {
		return fmt.Errorf("chart-cache-size must not be negative, got %d", c.ChartCacheSize)
	}
	if c.Watch && c.CSVPath == "" {
		return errors.New("watch requires a csv path")
	}
	return nil
}
