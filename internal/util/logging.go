package util

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu       sync.RWMutex
	logLevel = new(slog.LevelVar)
	logger   *slog.Logger
)

func init() {
	logLevel.Set(slog.LevelInfo)
	logger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				// Format time as HH:MM:SS
				if t, ok := a.Value.Any().(interface{ Format(string) string }); ok {
					return slog.String(slog.TimeKey, t.Format("15:04:05"))
				}
			}
			return a
		},
	})
	return slog.New(handler)
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Debug logs a debug message using the default logger.
func Debug(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Debug(fmt.Sprintf(format, args...))
}

// SetVerbose enables or disables debug output.
func SetVerbose(verbose bool) {
	if verbose {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// SetQuiet limits logging to errors.
func SetQuiet(quiet bool) {
	if quiet {
		logLevel.Set(slog.LevelError)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// With returns a structured logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With(args...)
}
