// Package logging configures the process-wide structured logger. It must
// be initialized before the event loop starts and left open until the
// render task has exited, per the global-state lifecycle note in the
// design notes.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. It defaults to a discarding writer
// so packages that log before Init runs (e.g. during flag parsing) don't
// panic or spam stderr.
var Logger = zerolog.New(io.Discard)

// Init opens (creating parent directories as needed) the log file at path
// and installs it as the process-wide logger at the given level. Passing
// an empty path keeps the discarding logger, which is the right default
// for library consumers and tests.
func Init(path string, debug bool) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return f, nil
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
