package cmd

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SetGlobalLogger sets the zap global logger and redirects the
// standard library's package-global logger to it at debug level.
// It returns a function that restores both.
func SetGlobalLogger(logger *zap.Logger) func() {
	undoGlobals := zap.ReplaceGlobals(logger)
	undoStdLog, err := zap.RedirectStdLogAt(logger, zapcore.DebugLevel)
	if err != nil {
		panic(err)
	}
	return func() {
		undoStdLog()
		undoGlobals()
	}
}
