package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	*zerolog.Logger
}

// NewConsole returns a logger writing human-readable output to stdout.
func NewConsole(debug bool) *Logger {
	return New(debug, os.Stdout)
}

// NewErrorConsole returns a logger writing to stderr, for use before the
// main logger can be constructed.
func NewErrorConsole(debug bool) *Logger {
	return New(debug, os.Stderr)
}

func New(debug bool, out io.Writer) *Logger {
	level := zerolog.InfoLevel

	if debug {
		level = zerolog.DebugLevel
	}

	l := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{&l}
}
