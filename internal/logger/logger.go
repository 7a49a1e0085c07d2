// Package logger builds the application's zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/alchemorsel-recipes/backend/config"
)

// ServiceName is attached to every log line
const ServiceName = "recipes-api"

// New returns a logger configured from cfg. Unknown levels fall back to info.
func New(cfg config.LogConfig, env config.Environment) zerolog.Logger {
	var out io.Writer = os.Stdout
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(out, cfg.Level, env)
}

// NewWithWriter is New with an explicit destination
func NewWithWriter(out io.Writer, level string, env config.Environment) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", ServiceName).
		Str("environment", string(env)).
		Logger()
}
