// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"errors"
	"slices"

	"github.com/stephane95000/report-app/pkg/reportclient"
	"github.com/stephane95000/report-app/services/reporting"
)

// FormMode selects between creating a new report and editing an
// existing one.
type FormMode int

const (
	ModeCreate FormMode = iota
	ModeUpdate
)

// SubmitLabel returns the action label for the mode.
func (m FormMode) SubmitLabel() string {
	if m == ModeUpdate {
		return "UPDATE"
	}
	return "CREATE"
}

// SuccessMessage returns the notification shown after a successful
// submission in this mode.
func (m FormMode) SuccessMessage() string {
	if m == ModeUpdate {
		return "Report updated successfully"
	}
	return "Report created successfully"
}

// FormValues is the editable snapshot of a report form.
type FormValues struct {
	FirstName      string
	LastName       string
	Email          string
	Sex            string
	BirthDate      string
	Description    string
	ObservationIDs []int
}

// valuesFromReport seeds form values from an existing report.
func valuesFromReport(r reporting.Report) FormValues {
	ids := make([]int, 0, len(r.Observations))
	for _, o := range r.Observations {
		ids = append(ids, o.ID)
	}
	return FormValues{
		FirstName:      r.Author.FirstName,
		LastName:       r.Author.LastName,
		Email:          r.Author.Email,
		Sex:            string(r.Author.Sex),
		BirthDate:      r.Author.BirthDate,
		Description:    r.Description,
		ObservationIDs: ids,
	}
}

// Equal reports whether two value snapshots are identical. Observation
// selections compare as sets: picking the same ids in a different
// order is not a change.
func (v FormValues) Equal(other FormValues) bool {
	if v.FirstName != other.FirstName ||
		v.LastName != other.LastName ||
		v.Email != other.Email ||
		v.Sex != other.Sex ||
		v.BirthDate != other.BirthDate ||
		v.Description != other.Description {
		return false
	}
	if len(v.ObservationIDs) != len(other.ObservationIDs) {
		return false
	}
	a := slices.Clone(v.ObservationIDs)
	b := slices.Clone(other.ObservationIDs)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// CreateReport converts the values into the wire payload.
func (v FormValues) CreateReport() reporting.CreateReport {
	return reporting.CreateReport{
		Author: reporting.Author{
			FirstName: v.FirstName,
			LastName:  v.LastName,
			Email:     v.Email,
			Sex:       reporting.Sex(v.Sex),
			BirthDate: v.BirthDate,
		},
		Description:  v.Description,
		Observations: v.ObservationIDs,
	}
}

// SubmitDecision is the outcome of BeginSubmit.
type SubmitDecision int

const (
	// SubmitBlocked means a submission is already in flight.
	SubmitBlocked SubmitDecision = iota
	// SubmitSkip means the values are unchanged in update mode: no
	// request is sent and the caller navigates away without showing a
	// notification.
	SubmitSkip
	// SubmitSend means the payload should go to the server.
	SubmitSend
)

// FormController holds the submission state machine for the report
// form, independent of any rendering concerns.
//
// # Description
//
// BeginSubmit decides whether a submission proceeds: an in-flight
// submission blocks, unchanged values in update mode short-circuit to
// a plain navigation, everything else sends. FinishSuccess and
// FinishError close the in-flight window. Email conflicts reported by
// the server are remembered in takenEmails so the form can reject the
// same address locally on the next attempt.
type FormController struct {
	Mode     FormMode
	ReportID int

	initial     FormValues
	inFlight    bool
	takenEmails map[string]struct{}

	// GeneralError is set when a submission failed for a reason other
	// than an email conflict.
	GeneralError bool
}

// NewCreateController returns a controller for a blank create form.
func NewCreateController() *FormController {
	return &FormController{
		Mode:        ModeCreate,
		takenEmails: map[string]struct{}{},
	}
}

// NewUpdateController returns a controller seeded from an existing
// report.
func NewUpdateController(r reporting.Report) *FormController {
	return &FormController{
		Mode:        ModeUpdate,
		ReportID:    r.ID,
		initial:     valuesFromReport(r),
		takenEmails: map[string]struct{}{},
	}
}

// BeginSubmit starts a submission attempt for the given values.
func (c *FormController) BeginSubmit(values FormValues) SubmitDecision {
	if c.inFlight {
		return SubmitBlocked
	}
	if c.Mode == ModeUpdate && values.Equal(c.initial) {
		return SubmitSkip
	}
	c.inFlight = true
	c.GeneralError = false
	return SubmitSend
}

// FinishSuccess closes a successful submission.
func (c *FormController) FinishSuccess() {
	c.inFlight = false
}

// FinishError closes a failed submission. Email conflicts record the
// rejected address and return true; any other error raises
// GeneralError and returns false.
func (c *FormController) FinishError(values FormValues, err error) bool {
	c.inFlight = false

	var conflict *reportclient.ConflictError
	if errors.As(err, &conflict) && conflict.Field == "email" {
		c.takenEmails[values.Email] = struct{}{}
		return true
	}
	c.GeneralError = true
	return false
}

// EmailTaken reports whether the server has already rejected this
// address during the current form session.
func (c *FormController) EmailTaken(email string) bool {
	_, ok := c.takenEmails[email]
	return ok
}

// InFlight reports whether a submission is currently pending.
func (c *FormController) InFlight() bool {
	return c.inFlight
}
