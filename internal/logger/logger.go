package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

func options(level log.Level) log.Options {
	return log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	}
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return &Logger{Logger: log.NewWithOptions(w, options(log.InfoLevel))}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	return &Logger{Logger: log.NewWithOptions(w, options(level))}
}

// ParseLevel maps a configured level name to a log level
func ParseLevel(name string) (log.Level, error) {
	if name == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level '%s': %w", name, err)
	}
	return level, nil
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	return NewWithLevel(io.MultiWriter(writers...), level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// BuildStarted logs the start of a batch conversion
func (l *Logger) BuildStarted(root, outDir string, workers int) {
	l.Info("build started",
		"root", root,
		"out_dir", outDir,
		"workers", workers)
}

// BuildCompleted logs the end of a batch conversion
func (l *Logger) BuildCompleted(pages, problems, failed int, duration time.Duration) {
	l.Info("build completed",
		"pages", pages,
		"problems", problems,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}

// PageParsed logs a parsed page
func (l *Logger) PageParsed(file string, blocks int) {
	l.Debug("page parsed",
		"file", file,
		"blocks", blocks)
}

// ParseProblem logs a problem the parser recovered from, or the one that
// aborted the parse
func (l *Logger) ParseProblem(file string, err error) {
	l.Warn("parse problem",
		"file", file,
		"error", err)
}

// PageRendered logs a page written as HTML
func (l *Logger) PageRendered(source, dest string, unresolved int) {
	if unresolved > 0 {
		l.Warn("page rendered with unresolved links",
			"source", source,
			"dest", dest,
			"unresolved", unresolved)
		return
	}
	l.Info("page rendered",
		"source", source,
		"dest", dest)
}

// PageFormatted logs a page rewritten in canonical form
func (l *Logger) PageFormatted(file string, changed bool) {
	l.Info("page formatted",
		"file", file,
		"changed", changed)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(root, outDir, ext string) {
	l.Debug("config loaded",
		"root", root,
		"out_dir", outDir,
		"extension", ext)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
