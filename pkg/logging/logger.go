// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for report-app components.
//
// The package is a thin layer over the standard library slog package:
//
//   - Default: stderr output for CLI compatibility (follows Unix conventions)
//   - Optional: file logging with automatic directory creation
//
// # Basic Usage
//
// For simple CLI usage with stderr output:
//
//	logger := logging.Default()
//	logger.Info("report created", "report_id", id)
//	logger.Error("request failed", "error", err)
//
// # File Logging
//
// To enable file logging alongside stderr:
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelInfo,
//	    LogDir:  "~/.reportctl/logs",  // Supports ~ expansion
//	    Service: "reportctl",
//	})
//	defer logger.Close()  // Important: flushes and closes the file
//
// This creates log files named `{service}_{date}.log` in JSON format.
//
// # Thread Safety
//
// Logger is safe for concurrent use. The underlying slog.Logger is
// thread-safe and mutable state is protected by a mutex.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity. Levels follow the slog convention and
// are ordered Debug < Info < Warn < Error; setting a minimum level
// filters out everything below it.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	LevelInfo

	// LevelWarn is for potentially problematic situations.
	LevelWarn

	// LevelError is for error conditions.
	LevelError
)

// String returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a config string ("debug", "info", "warn",
// "error", any case) to a Level. Unknown values fall back to Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// toSlogLevel bridges Level to the standard library.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures the Logger behavior. A zero-value Config creates a
// logger that writes Info+ messages to stderr in text format.
type Config struct {
	// Level sets the minimum log level.
	// Default: LevelInfo
	Level Level

	// LogDir enables file logging to the specified directory.
	//
	// When set, logs are written to both stderr and a file named
	// "{Service}_{YYYY-MM-DD}.log" in JSON format. The directory is
	// created with 0750 permissions if it doesn't exist. Supports ~ for
	// home directory expansion.
	//
	// Default: "" (file logging disabled)
	LogDir string

	// Service identifies the component generating logs. Included in
	// every entry as the "service" attribute when set.
	Service string

	// JSON enables JSON output on stderr. File logs are always JSON.
	JSON bool

	// Quiet disables stderr output. Useful when a TUI owns the terminal
	// and stderr noise would corrupt the display.
	Quiet bool
}

// =============================================================================
// Logger
// =============================================================================

// Logger provides structured logging with multi-destination output.
//
// Always call Close() when done so the optional log file is flushed and
// closed:
//
//	logger := logging.New(config)
//	defer logger.Close()
type Logger struct {
	slog   *slog.Logger
	config Config

	// file is the optional log file handle (nil if file logging disabled)
	file *os.File

	mu sync.Mutex
}

// New creates a Logger with the given configuration.
//
// Description:
//
//	Sets up all logging destinations based on config: a stderr handler
//	(unless Quiet is true) and a file handler (if LogDir is set). File
//	setup failures degrade to stderr-only logging rather than failing.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}

	var handlers []slog.Handler
	if !config.Quiet {
		if config.JSON {
			handlers = append(handlers, slog.NewJSONHandler(os.Stderr, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
		}
	}

	logger := &Logger{config: config}

	if config.LogDir != "" {
		if file, err := openLogFile(config); err == nil {
			logger.file = file
			handlers = append(handlers, slog.NewJSONHandler(file, opts))
		} else {
			fmt.Fprintf(os.Stderr, "logging: file output disabled: %v\n", err)
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 4})
	case 1:
		handler = handlers[0]
	default:
		handler = &multiHandler{handlers: handlers}
	}

	sl := slog.New(handler)
	if config.Service != "" {
		sl = sl.With("service", config.Service)
	}
	logger.slog = sl
	return logger
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Default returns the process-wide logger. Until SetDefault is called
// it is a logger with the default configuration: Info level, stderr
// output, text format.
func Default() *Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(Config{})
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger returned by Default.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Debug logs at debug level with optional key-value attributes.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs at info level with optional key-value attributes.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs at warn level with optional key-value attributes.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs at error level with optional key-value attributes.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// With returns a Logger that includes the given attributes in every
// entry:
//
//	requestLogger := logger.With("request_id", reqID)
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
		file:   nil, // child loggers never own the file handle
	}
}

// Slog returns the underlying slog.Logger, for packages that take one
// directly (e.g. slog.SetDefault).
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Close flushes and closes the optional log file. Safe to call on a
// logger without file output, and safe to call more than once.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// openLogFile creates the log directory and opens today's log file.
func openLogFile(config Config) (*os.File, error) {
	dir := expandPath(config.LogDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	service := config.Service
	if service == "" {
		service = "reportapp"
	}
	name := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// =============================================================================
// Multi-destination Handler
// =============================================================================

// multiHandler fans a record out to every destination handler.
type multiHandler struct {
	handlers []slog.Handler
}

// Enabled reports whether any destination would log at this level.
func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to each enabled destination. The first
// error is returned but later destinations still receive the record.
func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
