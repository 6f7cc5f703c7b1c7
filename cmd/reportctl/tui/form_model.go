// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/stephane95000/report-app/pkg/validation"
	"github.com/stephane95000/report-app/services/reporting"
)

// submitResultMsg carries the outcome of a create/update request.
type submitResultMsg struct {
	seq int
	err error
}

// FormModel is the create/update form view.
//
// # Description
//
// The observation catalog is fetched before the form shows; the
// projection drives a spinner, an error screen or the form itself.
// Field validation runs through pkg/validation plus the controller's
// taken-email memory, so an address the server already rejected fails
// locally on the next attempt. After a conflict the form is rebuilt
// with the entered values retained and the email field reporting the
// conflict.
type FormModel struct {
	client     Client
	controller *FormController

	catalog Projection[[]reporting.Observation]
	spinner spinner.Model
	seq     int

	// values and confirm live behind pointers: bubbletea copies the
	// model on every Update while the huh accessors keep writing through
	// the addresses taken in buildForm, so the bound state must be
	// shared by all copies rather than embedded in one of them.
	form    *huh.Form
	values  *FormValues
	confirm *bool

	// Notification is the success message to print after the program
	// exits; empty when the dirty-check skipped the submission or the
	// form was aborted.
	Notification string

	submitSeq int
	done      bool
}

// NewCreateForm returns a form for a new report.
func NewCreateForm(client Client) FormModel {
	return newForm(client, NewCreateController(), FormValues{})
}

// NewUpdateForm returns a form pre-filled from an existing report.
func NewUpdateForm(client Client, report reporting.Report) FormModel {
	return newForm(client, NewUpdateController(report), valuesFromReport(report))
}

func newForm(client Client, controller *FormController, values FormValues) FormModel {
	m := FormModel{
		client:     client,
		controller: controller,
		catalog:    NewProjection[[]reporting.Observation](),
		values:     &values,
		confirm:    new(bool),
		seq:        1,
	}
	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	return m
}

// Init starts the spinner and the catalog fetch.
func (m FormModel) Init() tea.Cmd {
	client := m.client
	return tea.Batch(
		m.spinner.Tick,
		fetchCmd(m.seq, func(ctx context.Context) ([]reporting.Observation, error) {
			return client.Observations(ctx)
		}),
	)
}

// Update handles messages for the form view.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg[[]reporting.Observation]:
		if msg.seq != m.seq {
			return m, nil
		}
		m.catalog.resolve(msg.value, msg.err)
		if m.catalog.Resolved() {
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, nil

	case submitResultMsg:
		if msg.seq != m.submitSeq {
			return m, nil
		}
		if msg.err == nil {
			m.controller.FinishSuccess()
			m.Notification = m.controller.Mode.SuccessMessage()
			m.done = true
			return m, tea.Quit
		}
		m.controller.FinishError(*m.values, msg.err)
		// Rebuild so the email validator sees the conflicted address
		// and the user lands back on the form with values intact. The
		// next attempt must be confirmed again.
		*m.confirm = false
		m.form = m.buildForm()
		return m, m.form.Init()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "esc" && (m.form == nil || m.catalog.Failed()) {
			return m, tea.Quit
		}
	}

	if m.form == nil {
		return m, nil
	}

	child, cmd := m.form.Update(msg)
	if form, ok := child.(*huh.Form); ok {
		m.form = form
	}

	if m.form.State == huh.StateCompleted && !m.controller.InFlight() && !m.done {
		if !*m.confirm {
			m.done = true
			return m, tea.Quit
		}
		return m.submit(cmd)
	}
	return m, cmd
}

// submit runs the dirty check and, when needed, sends the payload.
func (m FormModel) submit(prev tea.Cmd) (tea.Model, tea.Cmd) {
	switch m.controller.BeginSubmit(*m.values) {
	case SubmitBlocked:
		return m, prev

	case SubmitSkip:
		// Unchanged values in update mode: leave without a request and
		// without a notification.
		m.done = true
		return m, tea.Quit
	}

	m.submitSeq++
	seq := m.submitSeq
	client := m.client
	controller := m.controller
	payload := m.values.CreateReport()

	send := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var err error
		if controller.Mode == ModeUpdate {
			err = client.Update(ctx, controller.ReportID, payload)
		} else {
			err = client.Create(ctx, payload)
		}
		return submitResultMsg{seq: seq, err: err}
	}
	return m, tea.Batch(prev, send)
}

// View renders the catalog gate or the form.
func (m FormModel) View() string {
	if m.catalog.Loading {
		return fmt.Sprintf("\n %s Loading observation catalog...\n", m.spinner.View())
	}
	if m.catalog.Failed() {
		return "\n " + errorStyle.Render("Could not load the observation catalog.") +
			"\n\n " + helpStyle.Render("esc: quit") + "\n"
	}
	if m.form == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render(m.controller.Mode.SubmitLabel()+" REPORT") + "\n\n")
	if m.controller.GeneralError {
		b.WriteString(" " + errorStyle.Render("Submission failed, please retry.") + "\n\n")
	}
	b.WriteString(m.form.View())
	return b.String()
}

// buildForm constructs the huh form over the current values. Inputs
// bind directly to m.values so entered text survives a rebuild.
func (m *FormModel) buildForm() *huh.Form {
	catalog := *m.catalog.Value
	options := make([]huh.Option[int], 0, len(catalog))
	for _, o := range catalog {
		options = append(options, huh.NewOption(o.Name, o.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&m.values.FirstName).
				Validate(func(s string) error {
					return validation.ValidateName("first name", s)
				}),
			huh.NewInput().
				Title("Last name").
				Value(&m.values.LastName).
				Validate(func(s string) error {
					return validation.ValidateName("last name", s)
				}),
			huh.NewInput().
				Title("Email").
				Value(&m.values.Email).
				Validate(m.validateEmail),
			huh.NewSelect[string]().
				Title("Sex").
				Options(
					huh.NewOption(reporting.SexMale, reporting.SexMale),
					huh.NewOption(reporting.SexFemale, reporting.SexFemale),
					huh.NewOption(reporting.SexNonBinary, reporting.SexNonBinary),
				).
				Value(&m.values.Sex).
				Validate(validation.ValidateSex),
			huh.NewInput().
				Title("Birth date").
				Description("YYYY-MM-DD").
				Value(&m.values.BirthDate).
				Validate(validation.ValidateBirthDate),
		),
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Observations").
				Options(options...).
				Value(&m.values.ObservationIDs),
			huh.NewText().
				Title("Description").
				CharLimit(validation.MaxDescriptionLength).
				Value(&m.values.Description).
				Validate(validation.ValidateDescription),
			huh.NewConfirm().
				Title(m.controller.Mode.SubmitLabel()).
				Affirmative(m.controller.Mode.SubmitLabel()).
				Negative("Cancel").
				Value(m.confirm),
		),
	)
	return form
}

// validateEmail layers the server's conflict memory on top of the
// syntactic check.
func (m *FormModel) validateEmail(s string) error {
	if err := validation.ValidateEmail(s); err != nil {
		return err
	}
	if m.controller.EmailTaken(s) {
		return errors.New(reporting.EmailConflictMessage)
	}
	return nil
}
