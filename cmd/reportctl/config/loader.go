// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// Global is a singleton instance
	Global ClientConfig
	once   sync.Once
)

// Load ensures the config is loaded into the Global variable
func Load() error {
	var err error
	once.Do(func() {
		err = loadInternal()
	})
	return err
}

func loadInternal() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not find the user's home directory: %w", err)
	}
	configPath := filepath.Join(home, ".reportctl", "reportctl.yaml")
	// create it if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf(" First run detected, creating the config at %s\n", configPath)
		if err := createDefault(configPath); err != nil {
			return err
		}
	}
	// read the file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read the config file %w", err)
	}
	// parse the config in to the Global struct
	if err = yaml.Unmarshal(data, &Global); err != nil {
		return fmt.Errorf("failed to unmarshal the config into the Global singleton: %w", err)
	}
	applyFallbacks(&Global)
	return nil
}

// applyFallbacks fills zero values so a hand-edited config with missing
// keys still works.
func applyFallbacks(cfg *ClientConfig) {
	defaults := DefaultConfig()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = defaults.API.TimeoutSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory %w", err)
	}
	defaultCfg := DefaultConfig()
	data, err := yaml.Marshal(defaultCfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
