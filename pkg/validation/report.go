// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package validation provides field validation for report form input.
//
// The rules mirror the reporting API contract: names capped at 50
// characters, description at 256, syntactically valid email, sex limited
// to the three accepted values, and a birth date no later than yesterday
// and no earlier than 100 years before today.
package validation

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxNameLength is the limit for first and last names.
const MaxNameLength = 50

// MaxDescriptionLength is the limit for the report description.
const MaxDescriptionLength = 256

// BirthDateLayout is the wire format for birth dates.
const BirthDateLayout = "2006-01-02"

var validate = validator.New()

// sexValues are the accepted author sex values.
var sexValues = []string{"Male", "Female", "Non-binary"}

// ValidateName validates a first or last name: required, at most 50
// characters. The field name is used in the error message.
func ValidateName(field, value string) error {
	if err := validate.Var(value, fmt.Sprintf("required,max=%d", MaxNameLength)); err != nil {
		if value == "" {
			return fmt.Errorf("%s is required", field)
		}
		return fmt.Errorf("%s must be at most %d characters", field, MaxNameLength)
	}
	return nil
}

// ValidateEmail validates email syntax.
func ValidateEmail(value string) error {
	if value == "" {
		return fmt.Errorf("email is required")
	}
	if err := validate.Var(value, "email"); err != nil {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateSex checks the value is one of Male, Female or Non-binary.
func ValidateSex(value string) error {
	for _, v := range sexValues {
		if value == v {
			return nil
		}
	}
	if value == "" {
		return fmt.Errorf("sex is required")
	}
	return fmt.Errorf("sex must be one of %v", sexValues)
}

// ValidateDescription validates the report description: required, at
// most 256 characters.
func ValidateDescription(value string) error {
	if value == "" {
		return fmt.Errorf("description is required")
	}
	if err := validate.Var(value, fmt.Sprintf("max=%d", MaxDescriptionLength)); err != nil {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}

// ValidateBirthDate parses value as YYYY-MM-DD and checks the window
// against the current clock. See ValidateBirthDateAt.
func ValidateBirthDate(value string) error {
	return ValidateBirthDateAt(value, time.Now())
}

// ValidateBirthDateAt validates a birth date against a reference clock.
//
// The date must be no later than yesterday (today and future dates are
// rejected) and no earlier than 100 years before today. Bounds are
// inclusive; comparison is on calendar days, ignoring the time of day.
func ValidateBirthDateAt(value string, now time.Time) error {
	if value == "" {
		return fmt.Errorf("birth date is required")
	}
	date, err := time.Parse(BirthDateLayout, value)
	if err != nil {
		return fmt.Errorf("birth date must be in YYYY-MM-DD form")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	min := today.AddDate(-100, 0, 0)

	if date.After(yesterday) {
		return fmt.Errorf("birth date must be no later than yesterday")
	}
	if date.Before(min) {
		return fmt.Errorf("birth date must be no earlier than %s", min.Format(BirthDateLayout))
	}
	return nil
}
