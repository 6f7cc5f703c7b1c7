// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

type ClientConfig struct {
	// API: where the reporting service lives
	API APIConfig `yaml:"api"`

	// Logging: client-side log destination and verbosity
	Logging LoggingConfig `yaml:"logging"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`        // e.g. http://localhost:12400
	TimeoutSeconds int    `yaml:"timeout_seconds"` // per-request timeout
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // empty disables file logging
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		API: APIConfig{
			BaseURL:        "http://localhost:12400",
			TimeoutSeconds: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
