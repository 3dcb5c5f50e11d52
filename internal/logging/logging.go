// Package logging builds the zerolog loggers used by syncmark.
//
// In host mode stdout carries the native messaging wire protocol, so log
// output never goes to stdout: it is written to a log file in the data
// directory instead.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel = "SYNCMARK_LOG_LEVEL"

	// FileName is the log file created in the data directory.
	FileName = "syncmark.log"
)

// New returns a logger writing human-readable lines to w.
func New(w io.Writer, app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	level := zerolog.InfoLevel
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
}

// OpenFile opens (or creates) the log file in dir for appending and returns
// a logger bound to it. The caller closes the returned io.Closer.
func OpenFile(dir, app string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, err
	}
	file, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return New(file, app), file, nil
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
