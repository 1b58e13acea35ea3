package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrTitleRequired = errors.New("admin config: title is required")
var ErrBasePathInvalid = errors.New("admin config: base path must not contain spaces, query or fragment")
var ErrLoggingProviderUnknown = errors.New("admin config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("admin config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("admin config: logging format is invalid")
var ErrStorageDriverUnknown = errors.New("admin config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("admin config: storage dsn is required for the sql driver")
var ErrCommandTimeoutInvalid = errors.New("admin config: command timeout must be zero or positive")

// Config aggregates the settings of an admin registry and its demo host.
type Config struct {
	Title    string         `yaml:"title"`
	BasePath string         `yaml:"base_path"`
	Origin   string         `yaml:"origin"`
	Theme    ThemeConfig    `yaml:"theme"`
	Logging  LoggingConfig  `yaml:"logging"`
	Storage  StorageConfig  `yaml:"storage"`
	Commands CommandsConfig `yaml:"commands"`
}

// ThemeConfig picks the admin theme and overrides tokens.
type ThemeConfig struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// StorageConfig describes where sql backed resources keep their rows.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Cache  bool   `yaml:"cache"`
}

// CommandsConfig tunes the create command handlers.
type CommandsConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the defaults used when no configuration is supplied.
func DefaultConfig() Config {
	return Config{
		Title:    "Admin Panel",
		BasePath: "/admin",
		Theme: ThemeConfig{
			Name: "admin",
		},
		Logging: LoggingConfig{
			Provider: "noop",
			Level:    "info",
			Format:   "json",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Title) == "" {
		return ErrTitleRequired
	}
	if strings.ContainsAny(cfg.BasePath, " \t?#") {
		return fmt.Errorf("%w: %q", ErrBasePathInvalid, cfg.BasePath)
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	switch normalize(cfg.Storage.Driver) {
	case "", "memory":
	case "sqlite3":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}

	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "", "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
