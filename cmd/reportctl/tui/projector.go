// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"strconv"
	"strings"

	"github.com/stephane95000/report-app/services/reporting"
)

// Filter is the list view's filter criteria. Empty criteria are ignored;
// all present criteria must match (logical AND).
type Filter struct {
	// ID matches the stringified report id exactly.
	ID string

	// FirstName, LastName and Email match as case-insensitive
	// substrings of the corresponding author field.
	FirstName string
	LastName  string
	Email     string
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Matches applies the filter to one report.
func (f Filter) Matches(r reporting.Report) bool {
	if f.ID != "" && strconv.Itoa(r.ID) != f.ID {
		return false
	}
	if !containsFold(r.Author.FirstName, f.FirstName) {
		return false
	}
	if !containsFold(r.Author.LastName, f.LastName) {
		return false
	}
	if !containsFold(r.Author.Email, f.Email) {
		return false
	}
	return true
}

// containsFold is a case-insensitive substring match; an empty query
// always matches.
func containsFold(value, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(query))
}

// listProjection is the derived, filterable view over a report
// collection fetched exactly once per activation.
//
// The source slice is fixed at construction; applying a filter only
// recomputes the projected rows. Pagination indexes into Rows().
type listProjection struct {
	source   []reporting.Report
	filter   Filter
	filtered []reporting.Report
}

// newListProjection builds a projection over the fetched collection with
// no filter applied.
func newListProjection(reports []reporting.Report) *listProjection {
	p := &listProjection{source: reports}
	p.Apply(Filter{})
	return p
}

// Apply replaces the filter and recomputes the projected rows.
func (p *listProjection) Apply(f Filter) {
	p.filter = f
	if f.IsZero() {
		p.filtered = append(p.filtered[:0], p.source...)
		return
	}
	p.filtered = p.filtered[:0]
	for _, r := range p.source {
		if f.Matches(r) {
			p.filtered = append(p.filtered, r)
		}
	}
}

// Filtered reports whether a non-empty filter is in effect.
func (p *listProjection) Filtered() bool {
	return !p.filter.IsZero()
}

// Rows returns the filtered rows in source order.
func (p *listProjection) Rows() []reporting.Report {
	return p.filtered
}

// Len returns the number of filtered rows.
func (p *listProjection) Len() int {
	return len(p.filtered)
}

// Total returns the size of the unfiltered collection.
func (p *listProjection) Total() int {
	return len(p.source)
}
