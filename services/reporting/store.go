// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reporting

import (
	"errors"
	"sync"
)

// Sentinel errors returned by Store operations. Handlers map these to
// HTTP status codes with errors.Is.
var (
	// ErrNotFound indicates the requested report id is not in the store.
	ErrNotFound = errors.New("report not found")

	// ErrEmailTaken indicates a write would duplicate an author email.
	ErrEmailTaken = errors.New("author email already used")
)

// defaultCatalog is the seed observation catalog.
var defaultCatalog = []Observation{
	{ID: 1, Name: "Observation 1"},
	{ID: 2, Name: "Observation 2"},
	{ID: 3, Name: "Observation 3"},
}

// Store holds the mutable report collection and the read-only observation
// catalog.
//
// # Description
//
// Store enforces two invariants: report ids are unique, monotonically
// increasing and immutable, and no two live reports share an author email
// (case-sensitive). Observation ids submitted on a write are resolved
// against the catalog under the same lock as the uniqueness check and the
// insert, so a duplicate email can never slip between check and write.
//
// Reports embed observation snapshots, not catalog references. Replacing
// the catalog of a future Store instance does not rewrite history.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Returned slices and structs are
// copies; callers cannot mutate store state through them.
type Store struct {
	mu      sync.Mutex
	nextID  int
	reports []Report
	catalog []Observation
}

// NewStore creates a Store with the default observation catalog.
func NewStore() *Store {
	return NewStoreWithCatalog(defaultCatalog)
}

// NewStoreWithCatalog creates a Store with a caller-supplied catalog.
// The catalog is copied and fixed for the lifetime of the store.
func NewStoreWithCatalog(catalog []Observation) *Store {
	return &Store{
		nextID:  1,
		catalog: append([]Observation(nil), catalog...),
	}
}

// FindAll returns all reports in insertion order.
func (s *Store) FindAll() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Report, len(s.reports))
	for i, r := range s.reports {
		out[i] = copyReport(r)
	}
	return out
}

// FindByID returns the report with the given id.
//
// Returns ErrNotFound if no report has that id.
func (s *Store) FindByID(id int) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reports {
		if r.ID == id {
			return copyReport(r), nil
		}
	}
	return Report{}, ErrNotFound
}

// Observations returns the full catalog.
func (s *Store) Observations() []Observation {
	// The catalog is immutable after construction; copy anyway so callers
	// can never alias internal state.
	return append([]Observation(nil), s.catalog...)
}

// Add inserts a new report.
//
// # Description
//
// Fails with ErrEmailTaken if any existing report carries the same author
// email. On success it resolves the submitted observation ids against the
// catalog (unknown ids are dropped silently), assigns the next sequential
// id, snapshots the matched observations and appends the report.
//
// # Inputs
//
//	req - Author, observation ids and description for the new report
//
// # Outputs
//
//	Report - The stored report, including its assigned id
//	error  - ErrEmailTaken on duplicate email
func (s *Store) Add(req CreateReport) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(req.Author.Email, 0) {
		return Report{}, ErrEmailTaken
	}

	report := Report{
		ID:           s.nextID,
		Author:       req.Author,
		Observations: s.resolveLocked(req.Observations),
		Description:  req.Description,
	}
	s.reports = append(s.reports, report)
	s.nextID++
	return copyReport(report), nil
}

// Update replaces the author, observations and description of an existing
// report in place. The id and the report's position are unchanged.
//
// Returns ErrNotFound if the id is absent, and ErrEmailTaken if a
// different report already carries the incoming email. Updating a report
// with its own current email succeeds.
func (s *Store) Update(id int, req CreateReport) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.reports {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Report{}, ErrNotFound
	}
	if s.emailTakenLocked(req.Author.Email, id) {
		return Report{}, ErrEmailTaken
	}

	s.reports[idx].Author = req.Author
	s.reports[idx].Observations = s.resolveLocked(req.Observations)
	s.reports[idx].Description = req.Description
	return copyReport(s.reports[idx]), nil
}

// Remove deletes the report with the given id. Removing an absent id is a
// no-op, not an error.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reports {
		if r.ID == id {
			s.reports = append(s.reports[:i], s.reports[i+1:]...)
			return
		}
	}
}

// Len returns the number of stored reports.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

// emailTakenLocked reports whether a report other than excludeID holds the
// given email. Pass excludeID 0 to match against every report (report ids
// start at 1). Caller must hold s.mu.
func (s *Store) emailTakenLocked(email string, excludeID int) bool {
	for _, r := range s.reports {
		if r.ID != excludeID && r.Author.Email == email {
			return true
		}
	}
	return false
}

// resolveLocked maps observation ids to catalog snapshots, preserving
// catalog order and dropping ids the catalog does not contain. Caller must
// hold s.mu.
func (s *Store) resolveLocked(ids []int) []Observation {
	resolved := []Observation{}
	for _, obs := range s.catalog {
		for _, id := range ids {
			if obs.ID == id {
				resolved = append(resolved, obs)
				break
			}
		}
	}
	return resolved
}

// copyReport returns a deep copy so callers never alias the stored
// observations slice. The copy stays non-nil so an empty set serializes
// as [] rather than null.
func copyReport(r Report) Report {
	out := r
	out.Observations = make([]Observation, len(r.Observations))
	copy(out.Observations, r.Observations)
	return out
}
