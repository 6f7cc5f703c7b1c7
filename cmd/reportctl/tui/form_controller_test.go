// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stephane95000/report-app/pkg/reportclient"
	"github.com/stephane95000/report-app/services/reporting"
)

func sampleReport() reporting.Report {
	return reporting.Report{
		ID: 3,
		Author: reporting.Author{
			FirstName: "Alice",
			LastName:  "Martin",
			Email:     "alice@example.com",
			BirthDate: "1990-05-04",
			Sex:       reporting.SexFemale,
		},
		Observations: []reporting.Observation{
			{ID: 1, Name: "Observation 1"},
			{ID: 2, Name: "Observation 2"},
		},
		Description: "Initial description",
	}
}

func TestBeginSubmitSkipsUnchangedUpdate(t *testing.T) {
	report := sampleReport()
	c := NewUpdateController(report)

	got := c.BeginSubmit(valuesFromReport(report))
	assert.Equal(t, SubmitSkip, got)
	assert.False(t, c.InFlight())
}

func TestBeginSubmitSkipIgnoresObservationOrder(t *testing.T) {
	report := sampleReport()
	c := NewUpdateController(report)

	values := valuesFromReport(report)
	values.ObservationIDs = []int{2, 1}

	assert.Equal(t, SubmitSkip, c.BeginSubmit(values))
}

func TestBeginSubmitSendsChangedUpdate(t *testing.T) {
	report := sampleReport()
	c := NewUpdateController(report)

	values := valuesFromReport(report)
	values.Description = "Edited"

	assert.Equal(t, SubmitSend, c.BeginSubmit(values))
	assert.True(t, c.InFlight())
}

func TestBeginSubmitAlwaysSendsInCreateMode(t *testing.T) {
	c := NewCreateController()
	assert.Equal(t, SubmitSend, c.BeginSubmit(FormValues{Email: "new@example.com"}))
}

func TestBeginSubmitBlocksWhileInFlight(t *testing.T) {
	c := NewCreateController()
	values := FormValues{Email: "a@example.com"}

	assert.Equal(t, SubmitSend, c.BeginSubmit(values))
	assert.Equal(t, SubmitBlocked, c.BeginSubmit(values))

	c.FinishSuccess()
	assert.Equal(t, SubmitSend, c.BeginSubmit(values))
}

func TestFinishErrorRecordsEmailConflict(t *testing.T) {
	c := NewCreateController()
	values := FormValues{Email: "taken@example.com"}
	c.BeginSubmit(values)

	handled := c.FinishError(values, &reportclient.ConflictError{Field: "email"})

	assert.True(t, handled)
	assert.False(t, c.GeneralError)
	assert.False(t, c.InFlight())
	assert.True(t, c.EmailTaken("taken@example.com"))
	assert.False(t, c.EmailTaken("other@example.com"))
}

func TestFinishErrorRaisesGeneralErrorForOtherFailures(t *testing.T) {
	c := NewCreateController()
	values := FormValues{Email: "a@example.com"}
	c.BeginSubmit(values)

	handled := c.FinishError(values, errors.New("connection refused"))

	assert.False(t, handled)
	assert.True(t, c.GeneralError)
	assert.False(t, c.EmailTaken("a@example.com"))
}

func TestGeneralErrorClearsOnNextAttempt(t *testing.T) {
	c := NewCreateController()
	values := FormValues{Email: "a@example.com"}
	c.BeginSubmit(values)
	c.FinishError(values, errors.New("boom"))
	assert.True(t, c.GeneralError)

	c.BeginSubmit(values)
	assert.False(t, c.GeneralError)
}

func TestModeLabelsAndMessages(t *testing.T) {
	assert.Equal(t, "CREATE", ModeCreate.SubmitLabel())
	assert.Equal(t, "UPDATE", ModeUpdate.SubmitLabel())
	assert.Equal(t, "Report created successfully", ModeCreate.SuccessMessage())
	assert.Equal(t, "Report updated successfully", ModeUpdate.SuccessMessage())
}

func TestFormValuesRoundTrip(t *testing.T) {
	report := sampleReport()
	values := valuesFromReport(report)
	payload := values.CreateReport()

	assert.Equal(t, report.Author, payload.Author)
	assert.Equal(t, report.Description, payload.Description)
	assert.Equal(t, []int{1, 2}, payload.Observations)
}
