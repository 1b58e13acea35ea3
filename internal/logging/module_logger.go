package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-admin/pkg/interfaces"
)

const (
	rootModule     = "admin"
	registryModule = "admin.registry"
	resourceModule = "admin.resource"
	commandsModule = "admin.commands"
	storeModule    = "admin.store"
)

const (
	fieldResource = "resource"
	fieldAction   = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger carries
// the module identifier as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RootLogger returns the top level admin logger.
func RootLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// RegistryLogger returns the logger used while registering resources.
func RegistryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, registryModule)
}

// ResourceLogger returns the logger used by erased resources.
func ResourceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resourceModule)
}

// CommandsLogger returns the logger used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// StoreLogger returns the logger used by storage adapters.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// WithResourceContext tags the logger with the resource path and the action
// being performed. Empty values are ignored.
func WithResourceContext(logger interfaces.Logger, resource, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(resource); trimmed != "" {
		fields[fieldResource] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
