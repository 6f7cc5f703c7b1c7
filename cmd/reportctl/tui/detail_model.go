// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stephane95000/report-app/services/reporting"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	cardTitleStyle = lipgloss.NewStyle().Bold(true)

	labelStyle = lipgloss.NewStyle().Faint(true).Width(12)

	chipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginRight(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// closeDetailMsg asks the parent view to dismiss an embedded detail.
type closeDetailMsg struct{}

// DetailModel shows a single report, fetched by id through an async
// projection. It runs standalone (reportctl view) or embedded in the
// list view; embedded, esc closes it instead of quitting.
type DetailModel struct {
	client   Client
	id       int
	report   Projection[reporting.Report]
	spinner  spinner.Model
	seq      int
	embedded bool
}

// NewDetailModel creates a standalone detail view for one report id.
func NewDetailModel(client Client, id int) DetailModel {
	return newDetail(client, id, false)
}

// newEmbeddedDetail creates a detail view hosted by the list view.
func newEmbeddedDetail(client Client, id int) DetailModel {
	return newDetail(client, id, true)
}

func newDetail(client Client, id int, embedded bool) DetailModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return DetailModel{
		client:   client,
		id:       id,
		report:   NewProjection[reporting.Report](),
		spinner:  sp,
		seq:      1,
		embedded: embedded,
	}
}

// Init starts the spinner and the report fetch.
func (m DetailModel) Init() tea.Cmd {
	id := m.id
	client := m.client
	return tea.Batch(
		m.spinner.Tick,
		fetchCmd(m.seq, func(ctx context.Context) (reporting.Report, error) {
			return client.Get(ctx, id)
		}),
	)
}

// Update handles messages for the detail view.
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg[reporting.Report]:
		if msg.seq != m.seq {
			return m, nil
		}
		m.report.resolve(msg.value, msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.embedded {
				return m, func() tea.Msg { return closeDetailMsg{} }
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the report card, or the loading/error state.
func (m DetailModel) View() string {
	if m.report.Loading {
		return fmt.Sprintf("\n %s Loading report %d...\n", m.spinner.View(), m.id)
	}
	if m.report.Failed() {
		return "\n " + errorStyle.Render(fmt.Sprintf("Could not load report %d.", m.id)) + "\n"
	}

	r := *m.report.Value

	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(fmt.Sprintf("Report #%d", r.ID)))
	b.WriteString("\n\n")
	writeField(&b, "Name", r.Author.FirstName+" "+r.Author.LastName)
	writeField(&b, "Email", r.Author.Email)
	writeField(&b, "Birth date", r.Author.BirthDate)
	writeField(&b, "Sex", r.Author.Sex)
	writeField(&b, "Description", r.Description)

	if len(r.Observations) > 0 {
		chips := make([]string, len(r.Observations))
		for i, obs := range r.Observations {
			chips[i] = chipStyle.Render(obs.Name)
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, chips...))
	}

	footer := "esc: back"
	if !m.embedded {
		footer = "q: quit"
	}
	return "\n" + cardStyle.Render(b.String()) + "\n " + helpStyle.Render(footer) + "\n"
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}
