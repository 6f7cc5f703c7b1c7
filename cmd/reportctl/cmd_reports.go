// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/stephane95000/report-app/cmd/reportctl/config"
	"github.com/stephane95000/report-app/cmd/reportctl/tui"
	"github.com/stephane95000/report-app/pkg/logging"
	"github.com/stephane95000/report-app/pkg/reportclient"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// newClient builds the API client from the config, honoring the --api
// override.
func newClient() *reportclient.Client {
	base := config.Global.API.BaseURL
	if apiBaseURL != "" {
		base = apiBaseURL
	}
	return reportclient.New(base)
}

// requestContext returns a context bounded by the configured timeout.
func requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(config.Global.API.TimeoutSeconds) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

// requireTTY exits when an interactive command runs without a terminal.
func requireTTY(cmd *cobra.Command) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return
	}
	fmt.Fprintf(os.Stderr, "%s is interactive and needs a terminal\n", cmd.Name())
	os.Exit(1)
}

func parseReportID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		fmt.Fprintln(os.Stderr, failStyle.Render("report id must be a non-negative number"))
		os.Exit(1)
	}
	return id
}

func fail(err error) {
	logging.Default().Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, failStyle.Render(err.Error()))
	os.Exit(1)
}

func runList(cmd *cobra.Command, args []string) {
	requireTTY(cmd)
	client := newClient()

	// The list view can hand off to the create/edit form and then
	// return; loop until it exits with nothing pending.
	for {
		final, err := tea.NewProgram(tui.NewListModel(client)).Run()
		if err != nil {
			fail(err)
		}
		list, ok := final.(tui.ListModel)
		if !ok || list.PendingAction == tui.ActionNone {
			return
		}

		switch list.PendingAction {
		case tui.ActionCreate:
			runForm(tui.NewCreateForm(client))

		case tui.ActionEdit:
			ctx, cancel := requestContext()
			report, err := client.Get(ctx, list.PendingID)
			cancel()
			if err != nil {
				fail(err)
			}
			runForm(tui.NewUpdateForm(client, report))
		}
	}
}

func runView(cmd *cobra.Command, args []string) {
	id := parseReportID(args[0])

	// Non-interactive output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		ctx, cancel := requestContext()
		defer cancel()
		report, err := newClient().Get(ctx, id)
		if err != nil {
			if errors.Is(err, reportclient.ErrNotFound) {
				fail(fmt.Errorf("report %d not found", id))
			}
			fail(err)
		}
		fmt.Printf("#%d %s %s <%s> %s %s\n", report.ID,
			report.Author.FirstName, report.Author.LastName,
			report.Author.Email, report.Author.BirthDate, report.Author.Sex)
		for _, o := range report.Observations {
			fmt.Printf("  [%d] %s\n", o.ID, o.Name)
		}
		fmt.Printf("  %s\n", report.Description)
		return
	}

	m := tui.NewDetailModel(newClient(), id)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fail(err)
	}
}

func runCreate(cmd *cobra.Command, args []string) {
	requireTTY(cmd)
	runForm(tui.NewCreateForm(newClient()))
}

func runUpdate(cmd *cobra.Command, args []string) {
	requireTTY(cmd)
	id := parseReportID(args[0])

	// Fetch first so a bad id fails before the form opens.
	ctx, cancel := requestContext()
	report, err := newClient().Get(ctx, id)
	cancel()
	if err != nil {
		if errors.Is(err, reportclient.ErrNotFound) {
			fail(fmt.Errorf("report %d not found", id))
		}
		fail(err)
	}

	runForm(tui.NewUpdateForm(newClient(), report))
}

func runForm(m tui.FormModel) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		fail(err)
	}
	if form, ok := final.(tui.FormModel); ok && form.Notification != "" {
		fmt.Println(successStyle.Render(form.Notification))
	}
}

func runDelete(cmd *cobra.Command, args []string) {
	id := parseReportID(args[0])

	ctx, cancel := requestContext()
	defer cancel()
	if err := newClient().Delete(ctx, id); err != nil {
		fail(err)
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Report %d deleted", id)))
}

func runObservations(cmd *cobra.Command, args []string) {
	ctx, cancel := requestContext()
	defer cancel()

	observations, err := newClient().Observations(ctx)
	if err != nil {
		fail(err)
	}
	for _, o := range observations {
		fmt.Printf("[%d] %s\n", o.ID, o.Name)
	}
}
