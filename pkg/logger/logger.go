// Package logger owns the process-wide zerolog logger. Call Init once from
// main, then pass the returned logger down or fetch it with Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects level and output format at startup.
type Options struct {
	// Level names the minimum level to emit: trace, debug, info, warn or
	// error. Anything else falls back to info.
	Level string
	// Pretty switches from JSON lines to the coloured console writer. Keep it
	// off outside local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	once sync.Once
	root zerolog.Logger
	set  bool
)

// Init builds the singleton. Subsequent calls return the logger from the
// first one unchanged.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opts.Output
		if w == nil {
			w = os.Stdout
		}
		if opts.Pretty {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		level := levelFromString(opts.Level)
		zerolog.SetGlobalLevel(level)

		root = zerolog.New(w).Level(level).With().Timestamp().Caller().Logger()
		set = true
	})
	return root
}

// Get returns the singleton and panics when Init has not run. The panic is
// deliberate: logging silently to a zero logger hides startup bugs.
func Get() zerolog.Logger {
	if !set {
		panic("logger: Init must run before Get")
	}
	return root
}

func levelFromString(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
