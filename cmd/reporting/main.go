// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command reporting starts the report-app HTTP server.
//
// It reads configuration from environment variables and starts the
// server.
//
// # Environment Variables
//
//   - REPORTING_PORT: HTTP server port (default: 12400)
//   - REPORTING_ALLOW_ORIGINS: comma-separated CORS origins (default: none)
//   - REPORTING_METRICS: expose prometheus /metrics, "true"/"false" (default: true)
//
// # Usage
//
//	# Build
//	go build -o reporting ./cmd/reporting
//
//	# Run
//	REPORTING_PORT=12400 ./reporting
package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/stephane95000/report-app/services/reporting"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Build configuration from environment variables
	cfg := reporting.Config{
		Port:          getEnvInt("REPORTING_PORT", 12400),
		AllowOrigins:  getEnvList("REPORTING_ALLOW_ORIGINS"),
		EnableMetrics: getEnvBool("REPORTING_METRICS", true),
	}

	slog.Info("Starting reporting service",
		"port", cfg.Port,
		"cors_origins", len(cfg.AllowOrigins),
		"metrics", cfg.EnableMetrics,
	)

	svc := reporting.New(cfg)

	// Run the server (blocks until shutdown)
	if err := svc.Run(); err != nil {
		log.Fatalf("Reporting service error: %v", err)
	}
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool returns the environment variable as bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated environment variable, dropping
// empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
