// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/stephane95000/report-app/cmd/reportctl/config"
	"github.com/stephane95000/report-app/pkg/logging"
)

func main() {
	// Execute the root command. Cobra handles parsing the arguments.
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if err := config.Load(); err != nil {
			log.Fatalf("Error loading the config: %v", err)
		}
		logging.SetDefault(logging.New(logging.Config{
			Level:   logging.ParseLevel(config.Global.Logging.Level),
			LogDir:  config.Global.Logging.Dir,
			Service: "reportctl",
			Quiet:   true,
		}))
	}
}
