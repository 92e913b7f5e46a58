// Package ctxlog carries a zap Logger in a Context, so that code
// deep in a call chain logs with the fields of whoever called it.
package ctxlog

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

// nop is returned when no Logger is embedded.
var nop = zap.NewNop()

// WithLogger embeds logger in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithFields adds fields to the Logger embedded in ctx.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	return WithLogger(ctx, L(ctx).With(fields...))
}

// L returns the Logger embedded in ctx, or a nop Logger.
func L(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return nop
}
