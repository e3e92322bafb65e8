// Package logger builds the console logger shared by all components.
package logger

import (
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp layout of console log lines.
const TimeFormat = time.TimeOnly

// New returns a human-readable logger writing to out. Debug lowers the level
// from info to debug. Colors follow fatih/color's terminal detection.
func New(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: TimeFormat,
		NoColor:    color.NoColor,
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
