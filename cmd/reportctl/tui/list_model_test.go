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
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stephane95000/report-app/services/reporting"
)

// fakeClient is an in-memory Client for model tests.
type fakeClient struct {
	reports []reporting.Report
	err     error

	creates    int
	updates    int
	lastCreate reporting.CreateReport
	lastUpdate reporting.CreateReport
	lastID     int
}

func (f *fakeClient) List(ctx context.Context) ([]reporting.Report, error) {
	return f.reports, f.err
}

func (f *fakeClient) Get(ctx context.Context, id int) (reporting.Report, error) {
	for _, r := range f.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return reporting.Report{}, errors.New("not found")
}

func (f *fakeClient) Observations(ctx context.Context) ([]reporting.Observation, error) {
	return []reporting.Observation{{ID: 1, Name: "Observation 1"}}, f.err
}

func (f *fakeClient) Create(ctx context.Context, req reporting.CreateReport) error {
	f.creates++
	f.lastCreate = req
	return f.err
}

func (f *fakeClient) Update(ctx context.Context, id int, req reporting.CreateReport) error {
	f.updates++
	f.lastUpdate = req
	f.lastID = id
	return f.err
}

func (f *fakeClient) Delete(ctx context.Context, id int) error {
	return f.err
}

func resolvedList(m ListModel) ListModel {
	model, _ := m.Update(resolvedMsg[[]reporting.Report]{seq: m.fetchSeq, value: m.client.(*fakeClient).reports})
	return model.(ListModel)
}

func typeRune(m ListModel, r rune) (ListModel, tea.Cmd) {
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return model.(ListModel), cmd
}

func TestListModelResolvesFetch(t *testing.T) {
	client := &fakeClient{reports: sampleReports()}
	m := resolvedList(NewListModel(client))

	if !m.reports.Resolved() {
		t.Fatal("projection should be resolved")
	}
	if m.projection.Len() != 4 {
		t.Errorf("Len = %d, want 4", m.projection.Len())
	}
}

func TestListModelDiscardsStaleResolution(t *testing.T) {
	client := &fakeClient{reports: sampleReports()}
	m := NewListModel(client)

	model, _ := m.Update(resolvedMsg[[]reporting.Report]{seq: m.fetchSeq - 1, value: sampleReports()})
	m = model.(ListModel)

	if !m.reports.Loading {
		t.Error("stale resolution must not settle the projection")
	}
}

func TestListModelFetchFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("down")}
	m := NewListModel(client)

	model, _ := m.Update(resolvedMsg[[]reporting.Report]{seq: m.fetchSeq, err: client.err})
	m = model.(ListModel)

	if !m.reports.Failed() {
		t.Error("projection should report failure")
	}
	if m.reports.Value != nil {
		t.Error("failed projection must not carry a value")
	}
}

func TestListModelDebounceAppliesOnlyLatestFilter(t *testing.T) {
	client := &fakeClient{reports: sampleReports()}
	m := resolvedList(NewListModel(client))

	// Two quick keystrokes: each arms a window, only the second counts.
	m, _ = typeRune(m, 'a')
	firstSeq := m.filterSeq
	m, _ = typeRune(m, 'l')
	secondSeq := m.filterSeq

	if secondSeq != firstSeq+1 {
		t.Fatalf("filterSeq advanced from %d to %d, want +1", firstSeq, secondSeq)
	}

	// The stale window fires first and must be ignored.
	model, _ := m.Update(filterDebounceMsg{seq: firstSeq})
	m = model.(ListModel)
	if m.projection.Len() != 4 {
		t.Fatalf("stale debounce applied a filter: Len = %d, want 4", m.projection.Len())
	}

	// The latest window applies the pending criteria ("al" on id, no hit).
	model, _ = m.Update(filterDebounceMsg{seq: secondSeq})
	m = model.(ListModel)
	if m.projection.Len() != 0 {
		t.Fatalf("latest debounce not applied: Len = %d, want 0", m.projection.Len())
	}
}

func TestListModelDebounceResetsPageAndSelection(t *testing.T) {
	client := &fakeClient{reports: sampleReports()}
	m := resolvedList(NewListModel(client))
	m.paginator.Page = 1
	m.selected = 2

	m.pending = Filter{FirstName: "ali"}
	m.filterSeq++
	model, _ := m.Update(filterDebounceMsg{seq: m.filterSeq})
	m = model.(ListModel)

	if m.paginator.Page != 0 {
		t.Errorf("page = %d, want 0 after filter applied", m.paginator.Page)
	}
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0 after filter applied", m.selected)
	}
	if m.projection.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.projection.Len())
	}
}

func TestTruncateKeepsMultiByteRunesIntact(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten..", 13, "exactly ten.."},
		{"abcdefghij", 5, "abcd…"},
		{"Crise d'appendicite aiguë détectée", 24, "Crise d'appendicite aig…"},
		{"éèêëéèêëéè", 4, "éèê…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestListModelEditHandsOffSelectedRow(t *testing.T) {
	client := &fakeClient{reports: sampleReports()}
	m := resolvedList(NewListModel(client))
	m.selected = 1

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = model.(ListModel)

	if m.PendingAction != ActionEdit {
		t.Fatalf("PendingAction = %v, want ActionEdit", m.PendingAction)
	}
	if m.PendingID != 2 {
		t.Errorf("PendingID = %d, want 2", m.PendingID)
	}
	if cmd == nil {
		t.Error("ctrl+e should quit the program")
	}
}

func TestListModelEnterOpensDetail(t *testing.T) {
	client := &fakeClient{reports: sampleReports()}
	m := resolvedList(NewListModel(client))

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(ListModel)
	if m.detail == nil {
		t.Fatal("enter on a row should open the detail view")
	}
	if m.detail.id != 1 {
		t.Errorf("detail id = %d, want 1", m.detail.id)
	}

	model, _ = m.Update(closeDetailMsg{})
	m = model.(ListModel)
	if m.detail != nil {
		t.Error("closeDetailMsg should return to the list")
	}
}
