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
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stephane95000/report-app/services/reporting"
)

// filterDebounce is the inactivity window after which pending filter
// edits are applied. Bursts of keystrokes inside the window collapse
// into a single filter update; only the last pending edit survives.
const filterDebounce = 400 * time.Millisecond

// reportsPerPage is the list page size.
const reportsPerPage = 5

// Filter input indexes.
const (
	filterID = iota
	filterFirstName
	filterLastName
	filterEmail
	filterFieldCount
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	rowStyle = lipgloss.NewStyle().PaddingLeft(2)

	selectedRowStyle = lipgloss.NewStyle().PaddingLeft(0).
				Foreground(lipgloss.Color("205")).
				SetString("> ")

	faintStyle = lipgloss.NewStyle().Faint(true)
)

// filterDebounceMsg fires when a debounce window elapses. Stale windows
// are identified by seq and discarded.
type filterDebounceMsg struct {
	seq int
}

// ListAction is what the list view asks its caller to do after the
// program exits.
type ListAction int

const (
	ActionNone ListAction = iota
	ActionCreate
	ActionEdit
)

// ListModel is the report list view.
//
// # Description
//
// The collection is fetched exactly once per activation and projected
// through listProjection; filter edits never re-fetch. Filter input is
// debounced: every keystroke arms a 400ms timer and only the latest
// timer applies the pending criteria. Pagination operates on the
// filtered rows and resets to the first page whenever a filter is
// applied.
type ListModel struct {
	client Client

	reports    Projection[[]reporting.Report]
	projection *listProjection

	inputs    [filterFieldCount]textinput.Model
	focus     int
	selected  int
	paginator paginator.Model
	spinner   spinner.Model

	// fetchSeq guards the one-shot fetch; filterSeq identifies the
	// newest debounce window.
	fetchSeq  int
	filterSeq int
	pending   Filter

	detail *DetailModel

	// PendingAction and PendingID tell the caller to open the create or
	// update form after the program exits.
	PendingAction ListAction
	PendingID     int
}

// NewListModel creates the list view.
func NewListModel(client Client) ListModel {
	placeholders := [filterFieldCount]string{"id", "first name", "last name", "email"}

	m := ListModel{
		client:   client,
		reports:  NewProjection[[]reporting.Report](),
		fetchSeq: 1,
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = ""
		in.Width = 16
		in.CharLimit = 64
		m.inputs[i] = in
	}
	m.inputs[filterID].Focus()

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.paginator = paginator.New()
	m.paginator.Type = paginator.Dots
	m.paginator.PerPage = reportsPerPage

	return m
}

// Init starts the spinner and the one-shot collection fetch.
func (m ListModel) Init() tea.Cmd {
	client := m.client
	return tea.Batch(
		m.spinner.Tick,
		fetchCmd(m.fetchSeq, func(ctx context.Context) ([]reporting.Report, error) {
			return client.List(ctx)
		}),
	)
}

// Update handles messages for the list view.
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// An open detail view owns the input until it asks to close.
	if m.detail != nil {
		if _, ok := msg.(closeDetailMsg); ok {
			m.detail = nil
			return m, nil
		}
		child, cmd := m.detail.Update(msg)
		if detail, ok := child.(DetailModel); ok {
			m.detail = &detail
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case resolvedMsg[[]reporting.Report]:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.reports.resolve(msg.value, msg.err)
		if m.reports.Resolved() {
			m.projection = newListProjection(*m.reports.Value)
			m.syncPaginator()
		}
		return m, nil

	case filterDebounceMsg:
		// Only the newest window may apply its pending criteria.
		if msg.seq != m.filterSeq || m.projection == nil {
			return m, nil
		}
		m.projection.Apply(m.pending)
		m.paginator.Page = 0
		m.selected = 0
		m.syncPaginator()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		m.setFocus((m.focus + 1) % filterFieldCount)
		return m, nil

	case "shift+tab":
		m.setFocus((m.focus + filterFieldCount - 1) % filterFieldCount)
		return m, nil

	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down":
		if m.selected < len(m.pageRows())-1 {
			m.selected++
		}
		return m, nil

	case "left", "right", "pgup", "pgdown":
		var cmd tea.Cmd
		m.paginator, cmd = m.paginator.Update(msg)
		m.selected = 0
		return m, cmd

	case "enter":
		rows := m.pageRows()
		if len(rows) == 0 {
			return m, nil
		}
		detail := newEmbeddedDetail(m.client, rows[m.selected].ID)
		m.detail = &detail
		return m, detail.Init()

	case "ctrl+n":
		m.PendingAction = ActionCreate
		return m, tea.Quit

	case "ctrl+e":
		rows := m.pageRows()
		if len(rows) == 0 {
			return m, nil
		}
		m.PendingAction = ActionEdit
		m.PendingID = rows[m.selected].ID
		return m, tea.Quit
	}

	// Everything else edits the focused filter input.
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if m.inputs[m.focus].Value() != before {
		m.pending = m.currentFilter()
		m.filterSeq++
		seq := m.filterSeq
		return m, tea.Batch(cmd, tea.Tick(filterDebounce, func(time.Time) tea.Msg {
			return filterDebounceMsg{seq: seq}
		}))
	}
	return m, cmd
}

// View renders the filter bar, the current page of reports and the
// paginator.
func (m ListModel) View() string {
	if m.detail != nil {
		return m.detail.View()
	}

	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Reports") + "\n\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n")

	switch {
	case m.reports.Loading:
		b.WriteString(fmt.Sprintf("\n %s Loading reports...\n", m.spinner.View()))

	case m.reports.Failed():
		b.WriteString("\n " + errorStyle.Render("Could not load reports.") + "\n")

	case m.projection.Len() == 0 && m.projection.Filtered():
		b.WriteString("\n " + faintStyle.Render("No reports match the filter.") + "\n")

	case m.projection.Len() == 0:
		b.WriteString("\n " + faintStyle.Render("No reports yet.") + "\n")

	default:
		rows := m.pageRows()
		b.WriteString("\n")
		for i, r := range rows {
			line := fmt.Sprintf("#%-4d %s %s  %s  %s",
				r.ID, r.Author.FirstName, r.Author.LastName, r.Author.Email, truncate(r.Description, 32))
			if i == m.selected {
				b.WriteString(" " + selectedRowStyle.String() + line + "\n")
			} else {
				b.WriteString(" " + rowStyle.Render(line) + "\n")
			}
		}
		b.WriteString("\n " + m.paginator.View() + "\n")
		b.WriteString(" " + faintStyle.Render(fmt.Sprintf("%d of %d reports", m.projection.Len(), m.projection.Total())) + "\n")
	}

	b.WriteString("\n " + helpStyle.Render("tab: next filter • enter: open • ctrl+n: new • ctrl+e: edit • ←/→: page • esc: quit") + "\n")
	return b.String()
}

// pageRows returns the filtered rows visible on the current page.
func (m ListModel) pageRows() []reporting.Report {
	if m.projection == nil {
		return nil
	}
	start, end := m.paginator.GetSliceBounds(m.projection.Len())
	return m.projection.Rows()[start:end]
}

// currentFilter reads the filter inputs into a Filter.
func (m ListModel) currentFilter() Filter {
	return Filter{
		ID:        strings.TrimSpace(m.inputs[filterID].Value()),
		FirstName: strings.TrimSpace(m.inputs[filterFirstName].Value()),
		LastName:  strings.TrimSpace(m.inputs[filterLastName].Value()),
		Email:     strings.TrimSpace(m.inputs[filterEmail].Value()),
	}
}

func (m *ListModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[i].Focus()
}

func (m *ListModel) syncPaginator() {
	total := 0
	if m.projection != nil {
		total = m.projection.Len()
	}
	if total == 0 {
		m.paginator.SetTotalPages(1)
		return
	}
	m.paginator.SetTotalPages(total)
}

func (m ListModel) filterBar() string {
	labels := [filterFieldCount]string{"Id", "First name", "Last name", "Email"}
	parts := make([]string, filterFieldCount)
	for i, in := range m.inputs {
		parts[i] = faintStyle.Render(labels[i]+":") + " " + in.View()
	}
	return " " + strings.Join(parts, "  ")
}

// truncate shortens s to max display runes. Slicing on runes keeps
// multi-byte text intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
