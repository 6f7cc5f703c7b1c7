// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"testing"

	"github.com/stephane95000/report-app/services/reporting"
)

func sampleReports() []reporting.Report {
	mk := func(id int, first, last, email string) reporting.Report {
		return reporting.Report{
			ID: id,
			Author: reporting.Author{
				FirstName: first,
				LastName:  last,
				Email:     email,
				BirthDate: "1990-01-01",
				Sex:       reporting.SexMale,
			},
			Observations: []reporting.Observation{},
		}
	}
	return []reporting.Report{
		mk(1, "Alice", "Martin", "alice.martin@example.com"),
		mk(2, "Bob", "Durand", "bob.durand@example.com"),
		mk(10, "Alina", "Petit", "alina.petit@example.com"),
		mk(12, "Charles", "Martinez", "charles@example.com"),
	}
}

func TestFilterMatches(t *testing.T) {
	reports := sampleReports()

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"empty filter keeps everything", Filter{}, []int{1, 2, 10, 12}},
		{"id is an exact match", Filter{ID: "1"}, []int{1}},
		{"id two digits", Filter{ID: "10"}, []int{10}},
		{"id with no hit", Filter{ID: "99"}, nil},
		{"first name substring", Filter{FirstName: "ali"}, []int{1, 10}},
		{"first name case-insensitive", Filter{FirstName: "ALI"}, []int{1, 10}},
		{"last name substring", Filter{LastName: "martin"}, []int{1, 12}},
		{"email substring", Filter{Email: "durand"}, []int{2}},
		{"criteria combine with AND", Filter{FirstName: "ali", LastName: "petit"}, []int{10}},
		{"AND with no intersection", Filter{FirstName: "bob", Email: "alice"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for _, r := range reports {
				if tt.filter.Matches(r) {
					got = append(got, r.ID)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("matched ids = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("matched ids = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterIsZero(t *testing.T) {
	if !(Filter{}).IsZero() {
		t.Error("empty filter should be zero")
	}
	if (Filter{Email: "x"}).IsZero() {
		t.Error("filter with a criterion should not be zero")
	}
}

func TestListProjectionApply(t *testing.T) {
	p := newListProjection(sampleReports())

	if p.Len() != 4 || p.Total() != 4 {
		t.Fatalf("initial Len/Total = %d/%d, want 4/4", p.Len(), p.Total())
	}

	p.Apply(Filter{FirstName: "ali"})
	if p.Len() != 2 {
		t.Fatalf("filtered Len = %d, want 2", p.Len())
	}
	if p.Total() != 4 {
		t.Errorf("Total = %d, want 4 (total never shrinks with the filter)", p.Total())
	}
	if p.Rows()[0].ID != 1 || p.Rows()[1].ID != 10 {
		t.Errorf("rows = %v, want source order preserved", p.Rows())
	}

	if !p.Filtered() {
		t.Error("Filtered should be true while criteria are set")
	}

	// Clearing the filter restores the full collection.
	p.Apply(Filter{})
	if p.Len() != 4 {
		t.Errorf("cleared Len = %d, want 4", p.Len())
	}
	if p.Filtered() {
		t.Error("Filtered should be false with no criteria")
	}
}
