// Package logger sets up the process-wide slog logger for the ferry CLI.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the CLI logger. It is usable before Init and discards records
// until then.
var Log = slog.New(slog.NewTextHandler(io.Discard, nil))

// Init installs the CLI logger. Without a log file, records go to the
// terminal through pterm. With one, they are written as JSON to stdout and
// to a rotating file.
func Init(logFilePath string, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if logFilePath == "" {
		Log = slog.New(newConsoleHandler(debug))
	} else {
		rotator := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			Compress:   false,
		}
		writer := io.MultiWriter(os.Stdout, rotator)
		Log = slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}))
	}
	slog.SetDefault(Log)
}

func newConsoleHandler(debug bool) slog.Handler {
	plog := pterm.DefaultLogger.
		WithTime(true).
		WithTimeFormat("02 Jan 15:04:05").
		WithMaxWidth(1000).
		WithWriter(os.Stderr)
	if debug {
		plog = plog.WithLevel(pterm.LogLevelDebug)
	}
	return pterm.NewSlogHandler(plog)
}
