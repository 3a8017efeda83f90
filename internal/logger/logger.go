// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Until Init runs it discards everything, so
// packages and tests can log unconditionally.
var Log = newDiscard()

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init configures Log from the environment:
//
//	LOG_LEVEL   logrus level name, default "info"
//	LOG_FORMAT  "json" for JSON lines, anything else for text
//	LOG_FILE    append to this file instead of stdout
//
// The terminal game sets LOG_FILE (or passes -log) because stdout is the
// screen it draws on.
func Init() error {
	Log = logrus.New()

	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log.SetOutput(os.Stdout)
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		Log.SetOutput(f)
	}
	return nil
}

// Quiet sends all output to io.Discard. Used by the terminal game when no
// log file was requested.
func Quiet() {
	Log.SetOutput(io.Discard)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
