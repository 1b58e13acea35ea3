package admin

import (
	"io"

	"github.com/goliatone/go-admin/internal/runtimeconfig"
)

var (
	ErrTitleRequired          = runtimeconfig.ErrTitleRequired
	ErrBasePathInvalid        = runtimeconfig.ErrBasePathInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrStorageDriverUnknown   = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrCommandTimeoutInvalid  = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config         = runtimeconfig.Config
	ThemeConfig    = runtimeconfig.ThemeConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CommandsConfig = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration from r.
func LoadConfig(r io.Reader) (Config, error) {
	return runtimeconfig.Load(r)
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
