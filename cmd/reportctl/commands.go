// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	apiBaseURL string // CLI override for api.base_url

	rootCmd = &cobra.Command{
		Use:   "reportctl",
		Short: "A cli to browse and manage reports on a reporting service",
		Long: `Reportctl talks to a running reporting service and offers both
				plain commands and interactive terminal views for listing,
				inspecting, creating, updating and deleting reports.`,
	}

	// --- Reports ---
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Browse reports with interactive filtering and pagination",
		Run:   runList, // Defined in cmd_reports.go
	}
	viewCmd = &cobra.Command{
		Use:   "view [report_id]",
		Short: "Show a single report",
		Args:  cobra.ExactArgs(1),
		Run:   runView, // Defined in cmd_reports.go
	}
	createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a new report through an interactive form",
		Run:   runCreate, // Defined in cmd_reports.go
	}
	updateCmd = &cobra.Command{
		Use:   "update [report_id]",
		Short: "Edit an existing report through an interactive form",
		Args:  cobra.ExactArgs(1),
		Run:   runUpdate, // Defined in cmd_reports.go
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [report_id]",
		Short: "Delete a report",
		Args:  cobra.ExactArgs(1),
		Run:   runDelete, // Defined in cmd_reports.go
	}

	// --- Catalog ---
	observationsCmd = &cobra.Command{
		Use:   "observations",
		Short: "List the observation catalog",
		Run:   runObservations, // Defined in cmd_reports.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "",
		"Base URL of the reporting service (overrides the config file)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(observationsCmd)
}
