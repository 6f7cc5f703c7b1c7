// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reporting

// ServiceVersion is the reporting service version.
const ServiceVersion = "0.1.0"

// =============================================================================
// Domain Types
// =============================================================================

// Sex is the author's declared sex. The three accepted values are fixed
// by the API contract.
type Sex = string

const (
	SexMale      Sex = "Male"
	SexFemale    Sex = "Female"
	SexNonBinary Sex = "Non-binary"
)

// Author is the person a report is about.
//
// Email is the uniqueness key across all reports: no two live reports may
// carry the same email (case-sensitive exact match).
type Author struct {
	// FirstName is the author's first name.
	FirstName string `json:"first_name" binding:"required,max=50"`

	// LastName is the author's last name.
	LastName string `json:"last_name" binding:"required,max=50"`

	// Email uniquely identifies the author across reports.
	Email string `json:"email" binding:"required,email"`

	// BirthDate is the author's birth date in YYYY-MM-DD form.
	BirthDate string `json:"birth_date" binding:"required"`

	// Sex is one of Male, Female or Non-binary.
	Sex Sex `json:"sex" binding:"required,oneof=Male Female Non-binary"`
}

// Observation is a fixed reference-data item from the observation catalog.
//
// Observations embedded in a Report are snapshots taken at write time.
// Later catalog changes never retroactively alter stored reports.
type Observation struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Report is the primary record: an author, a free-text description and a
// set of observation snapshots.
type Report struct {
	// ID is store-assigned, unique and immutable after creation.
	ID int `json:"id"`

	// Author is the report's author record.
	Author Author `json:"author"`

	// Observations are catalog snapshots resolved at the last write.
	Observations []Observation `json:"observations"`

	// Description is free text.
	Description string `json:"description"`
}

// CreateReport is the request body for POST /reporting and PUT /reporting/:id.
//
// Observations carries catalog ids; the store resolves them into snapshots.
// Ids not present in the catalog are dropped silently.
type CreateReport struct {
	Author       Author `json:"author" binding:"required"`
	Observations []int  `json:"observations"`
	Description  string `json:"description" binding:"required,max=256"`
}

// =============================================================================
// Response Types
// =============================================================================

// HealthResponse is the response for GET /healthz.
type HealthResponse struct {
	// Status is "healthy" or "degraded".
	Status string `json:"status"`

	// Version is the service version.
	Version string `json:"version"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code (optional).
	Code string `json:"code,omitempty"`
}

// FieldErrors is the structured 400 body returned when a write would
// duplicate an author email. The shape is part of the wire contract:
//
//	{"author": {"email": ["This value already exist"]}}
type FieldErrors map[string]map[string][]string

// EmailConflictMessage is the message clients look for inside the
// author.email field path of a 400 body.
const EmailConflictMessage = "This value already exist"

// NewEmailConflictErrors returns the 400 body for a duplicate email.
func NewEmailConflictErrors() FieldErrors {
	return FieldErrors{
		"author": {
			"email": {EmailConflictMessage},
		},
	}
}
