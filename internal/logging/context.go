package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-admin/pkg/interfaces"
)

type contextKey string

const contextFieldsKey contextKey = "admin.logging.fields"

// ContextWithFields returns a context carrying structured logging fields.
// Fields already present on the context are kept and overridden key by key.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	merged := make(map[string]any, len(fields))
	maps.Copy(merged, ContextFields(ctx))
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields extracts fields stored with ContextWithFields. The returned
// map is a copy.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextFieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)
	return copied
}

// FromContext returns logger enriched with any fields carried by ctx and
// bound to ctx itself.
func FromContext(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		logger = NoOp()
	}
	if ctx == nil {
		return logger
	}
	return WithFields(logger, ContextFields(ctx)).WithContext(ctx)
}
