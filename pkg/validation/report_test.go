// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"strings"
	"testing"
	"time"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple", "Jane", false},
		{"max length", strings.Repeat("a", 50), false},
		{"accented", "Stéphane", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("first name", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple", "jane@example.com", false},
		{"subdomain", "jane@mail.example.co.uk", false},
		{"plus tag", "jane+tag@example.com", false},
		{"empty", "", true},
		{"no at sign", "jane.example.com", true},
		{"no domain", "jane@", true},
		{"spaces", "jane doe@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSex(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"male", "Male", false},
		{"female", "Female", false},
		{"non-binary", "Non-binary", false},
		{"empty", "", true},
		{"lowercase", "male", true},
		{"unknown", "Other", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSex(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSex(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"simple", "quarterly report", false},
		{"max length", strings.Repeat("d", 256), false},
		{"empty", "", true},
		{"too long", strings.Repeat("d", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescription(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDescription error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBirthDateAt(t *testing.T) {
	// Fixed clock so window edges are deterministic.
	now := time.Date(2026, time.August, 31, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"yesterday", "2026-08-30", false},
		{"mid window", "1990-04-12", false},
		{"exactly 100 years ago", "1926-08-31", false},
		{"empty", "", true},
		{"today", "2026-08-31", true},
		{"tomorrow", "2026-09-01", true},
		{"far future", "2100-01-01", true},
		{"just over 100 years", "1926-08-30", true},
		{"malformed", "31/08/1990", true},
		{"not a date", "soon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBirthDateAt(tt.value, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBirthDateAt(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
