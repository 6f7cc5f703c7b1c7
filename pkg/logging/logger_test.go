// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(99), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got := tt.level.toSlogLevel()
			if got != tt.want {
				t.Errorf("toSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_DefaultConfig(t *testing.T) {
	logger := New(Config{})
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	defer logger.Close()

	if logger.file != nil {
		t.Error("logger.file should be nil without LogDir")
	}
}

func TestNew_WithLogDir(t *testing.T) {
	tmpDir := t.TempDir()
	logger := New(Config{
		LogDir:  tmpDir,
		Service: "test",
		Quiet:   true,
	})
	defer logger.Close()

	if logger.file == nil {
		t.Fatal("logger.file is nil when LogDir specified")
	}

	logger.Info("hello", "k", "v")

	files, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("No log file created in LogDir")
	}
	if !strings.HasPrefix(files[0].Name(), "test_") {
		t.Errorf("log file %q missing service prefix", files[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, files[0].Name()))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file does not contain the JSON entry: %s", data)
	}
	if !strings.Contains(string(data), `"service":"test"`) {
		t.Errorf("log file entry missing service attribute: %s", data)
	}
}

func TestNew_WithLogDir_NoService(t *testing.T) {
	tmpDir := t.TempDir()
	logger := New(Config{
		LogDir: tmpDir,
		Quiet:  true,
	})
	defer logger.Close()

	files, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	found := false
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "reportapp_") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected log file with 'reportapp_' prefix")
	}
}

func TestNew_WithLogDir_InvalidPath(t *testing.T) {
	// File setup failure must degrade to stderr-only, not panic.
	logger := New(Config{
		LogDir: string([]byte{0}),
		Quiet:  true,
	})
	defer logger.Close()

	if logger.file != nil {
		t.Error("logger.file should be nil after a failed open")
	}
	logger.Info("still works")
}

func TestClose_Idempotent(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Quiet: true})

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)
	logger := &Logger{slog: slog.New(handler)}

	child := logger.With("request_id", "req-1")
	child.Info("processing")

	if !strings.Contains(buf.String(), `"request_id":"req-1"`) {
		t.Errorf("child logger missing inherited attribute: %s", buf.String())
	}
	if child.file != nil {
		t.Error("child logger must not own the file handle")
	}
}

func TestMultiHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	}}

	logger := slog.New(h)
	logger.Info("fan out", "k", "v")

	if !strings.Contains(a.String(), "fan out") {
		t.Errorf("text destination missing record: %s", a.String())
	}
	if !strings.Contains(b.String(), `"msg":"fan out"`) {
		t.Errorf("json destination missing record: %s", b.String())
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	debugOnly := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	errorOnly := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})

	h := &multiHandler{handlers: []slog.Handler{errorOnly, debugOnly}}
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled() should be true when any destination accepts the level")
	}

	h = &multiHandler{handlers: []slog.Handler{errorOnly}}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled() should be false when no destination accepts the level")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir in test environment")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde", "~/logs", filepath.Join(home, "logs")},
		{"absolute", "/var/log/reportapp", "/var/log/reportapp"},
		{"relative", "logs", "logs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandPath(tt.in); got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
