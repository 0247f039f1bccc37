// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Catalog  CatalogConfig           `yaml:"catalog"`
	Playback PlaybackConfig          `yaml:"playback"`
	Filters  map[string]FilterConfig `yaml:"filters"`
	Share    ShareConfig             `yaml:"share"`
	Server   ServerConfig            `yaml:"server"`
	Download DownloadConfig          `yaml:"download"`
	Messages MessagesConfig          `yaml:"messages"`
	Logging  LoggingConfig           `yaml:"logging"`
}

// CatalogConfig represents the catalog source configuration.
type CatalogConfig struct {
	// Source is a local path or http(s) URL of the catalog document.
	Source string `yaml:"source" validate:"required"`
	// MediaRoot is where relative song files are resolved.
	// Defaults to the directory (or base URL) of Source.
	MediaRoot  string `yaml:"media_root"`
	TimeoutSec int    `yaml:"timeout_sec" default:"10" validate:"gte=1,lte=300"`
	MaxRetries int    `yaml:"max_retries" default:"3" validate:"gte=0,lte=10"`
}

// PlaybackConfig represents playback control configuration.
type PlaybackConfig struct {
	Advance       string  `yaml:"advance" default:"view" validate:"oneof=view catalog"`
	Start         string  `yaml:"start" default:"first_visible" validate:"oneof=first_visible first_in_catalog"`
	Indicator     string  `yaml:"indicator" default:"playing_only" validate:"oneof=playing_only selected"`
	InitialVolume float64 `yaml:"initial_volume" default:"1" validate:"gte=0,lte=1"`
	TickMs        int     `yaml:"tick_ms" default:"500" validate:"gte=50,lte=5000"`
}

// FilterConfig represents a filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// ShareConfig represents deep-link and share configuration.
type ShareConfig struct {
	Scheme  string `yaml:"scheme" default:"query" validate:"oneof=query fragment"`
	BaseURL string `yaml:"base_url" default:"http://localhost:8080/" validate:"url"`
	// Command is an optional native share command. "{url}" and "{title}"
	// in its arguments are replaced before running it.
	Command []string `yaml:"command"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Addr  string      `yaml:"addr" default:":8080"`
	Token string      `yaml:"token"`
	Hooks HooksConfig `yaml:"hooks"`
}

// HooksConfig represents lifecycle hooks configuration.
type HooksConfig struct {
	OnStarted []string `yaml:"on_started"`
	OnStopped []string `yaml:"on_stopped"`
}

// DownloadConfig represents download configuration.
type DownloadConfig struct {
	Dir string `yaml:"dir" default:"."`
}

// MessagesConfig represents user-facing messages.
type MessagesConfig struct {
	Loading       string `yaml:"loading" default:"Loading songs..."`
	LoadError     string `yaml:"load_error" default:"Failed to load songs. Please try again later."`
	EmptyView     string `yaml:"empty_view" default:"No songs found for this selection."`
	PlaybackError string `yaml:"playback_error" default:"failed to load"`
	Shared        string `yaml:"shared" default:"Link shared."`
	ShareFailed   string `yaml:"share_failed" default:"Could not share the link."`
	Downloaded    string `yaml:"downloaded" default:"Saved."`
	DefaultError  string `yaml:"default_error" default:"Something went wrong."`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	// File is the log file for the terminal UI, which never logs to the terminal.
	File string `yaml:"file" default:"radiola.log"`
}

// Option adjusts the configuration after the file and environment are read,
// before defaults and validation.
type Option func(*Config)

// WithCatalogSource overrides the catalog source when source is non-empty.
func WithCatalogSource(source string) Option {
	return func(c *Config) {
		if source != "" {
			c.Catalog.Source = source
		}
	}
}

// WithServerAddr overrides the server address when addr is non-empty.
func WithServerAddr(addr string) Option {
	return func(c *Config) {
		if addr != "" {
			c.Server.Addr = addr
		}
	}
}

// Load loads configuration from a YAML file. An empty path loads only
// environment, options and defaults.
// Environment variables take precedence over file values.
func Load(path string, opts ...Option) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	for _, opt := range opts {
		opt(&cfg)
	}

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("RADIOLA_CATALOG"); v != "" {
		c.Catalog.Source = v
	}
	if v := os.Getenv("RADIOLA_MEDIA_ROOT"); v != "" {
		c.Catalog.MediaRoot = v
	}
	if v := os.Getenv("RADIOLA_TOKEN"); v != "" {
		c.Server.Token = v
	}
	if v := os.Getenv("RADIOLA_SHARE_BASE_URL"); v != "" {
		c.Share.BaseURL = v
	}
}

// GetMessage returns the message for the given code.
func (c *Config) GetMessage(code string) string {
	switch code {
	case "loading":
		return c.Messages.Loading
	case "load_error":
		return c.Messages.LoadError
	case "empty_view":
		return c.Messages.EmptyView
	case "playback_error":
		return c.Messages.PlaybackError
	case "shared":
		return c.Messages.Shared
	case "share_failed":
		return c.Messages.ShareFailed
	case "downloaded":
		return c.Messages.Downloaded
	default:
		return c.Messages.DefaultError
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// IsFilterEnabled checks if a filter is enabled. Filters without an entry
// are enabled.
func (c *Config) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Filters[filterName]; ok {
		return f.Enabled
	}
	return true
}

// FilterSettings returns per-filter settings keyed by filter name.
func (c *Config) FilterSettings() map[string]map[string]any {
	settings := make(map[string]map[string]any, len(c.Filters))
	for name, f := range c.Filters {
		settings[name] = f.Settings
	}
	return settings
}
