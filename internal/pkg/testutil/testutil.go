// Package testutil contains miscellaneous testing utilities.
package testutil

import (
	"context"
	"testing"

	"go.uber.org/zap" // Logging.
	"go.uber.org/zap/zaptest"

	"github.com/mintel/instance-terminator/pkg/ctxlog"
)

// TestLogger returns a zap Logger that logs all messages to the given testing.TB.
// It replaces the zap global Logger and redirects the stdlib log to the test Logger.
func TestLogger(t testing.TB) (logger *zap.Logger, teardown func()) {
	logger = zaptest.NewLogger(t)
	teardownLogger1 := zap.ReplaceGlobals(logger)
	teardownLogger2 := zap.RedirectStdLog(logger)
	teardown = func() {
		teardownLogger2()
		teardownLogger1()
		_ = logger.Sync()
	}
	return
}

// ContextSetup sets up zap test logging and returns a context
// with the test logger embedded.
func ContextSetup(t testing.TB) (ctx context.Context, logger *zap.Logger, teardown func()) {
	logger, teardownLogging := TestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.WithLogger(ctx, logger)
	teardown = func() {
		cancel()
		teardownLogging()
	}
	return
}
