package logger

import (
	"io"
	"os"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Config struct {
	Service string
	Version string
	Level   string
}

// New creates a new structured logger using go-kit/log
func New(config Config) kitlog.Logger {
	return newWithWriter(config, os.Stderr)
}

func newWithWriter(config Config, w io.Writer) kitlog.Logger {
	// logfmt keeps the output readable and easy to ship to log aggregators
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	logger = kitlog.With(logger, "caller", kitlog.DefaultCaller)
	logger = kitlog.With(logger, "service", config.Service, "version", config.Version)
	return level.NewFilter(logger, levelOption(config.Level))
}

// levelOption maps a LOG_LEVEL value to a go-kit level filter, defaulting to info
func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	case "none":
		return level.AllowNone()
	default:
		return level.AllowInfo()
	}
}
