// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tui provides the terminal user interface for reportctl.
//
// # Description
//
// This package implements the report list, report detail and report form
// views using bubbletea. Asynchronous API calls are projected into a
// tri-state value (loading, resolved, failed) that views render without
// knowing anything about the transport.
//
// # Thread Safety
//
// TUI components are designed for single-threaded use within the
// bubbletea event loop. Do not access model state from other goroutines;
// API calls run inside tea.Cmd functions and report back as messages.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stephane95000/report-app/services/reporting"
)

// fetchTimeout bounds every single-shot API call issued by a view.
const fetchTimeout = 10 * time.Second

// Client is the slice of the reporting API the TUI consumes.
// *reportclient.Client satisfies it; tests substitute fakes.
type Client interface {
	List(ctx context.Context) ([]reporting.Report, error)
	Get(ctx context.Context, id int) (reporting.Report, error)
	Observations(ctx context.Context) ([]reporting.Observation, error)
	Create(ctx context.Context, req reporting.CreateReport) error
	Update(ctx context.Context, id int, req reporting.CreateReport) error
	Delete(ctx context.Context, id int) error
}

// =============================================================================
// Async Projection
// =============================================================================

// Projection is the tri-state view of a single-shot fetch.
//
// A projection starts loading, then receives exactly one terminal event:
// success sets Value, failure clears it and keeps the cause in Err.
// Consumers must distinguish "resolved with an empty collection" (Value
// points at an empty slice) from "failed" (Value is nil) — the two are
// never conflated.
type Projection[T any] struct {
	// Loading is true until the terminal event arrives.
	Loading bool

	// Value is the fetched result; nil when loading or failed.
	Value *T

	// Err is the failure cause. Views usually render only the failed
	// state, but the cause is kept so callers are not forced to guess.
	Err error
}

// NewProjection returns a projection in its loading state.
func NewProjection[T any]() Projection[T] {
	return Projection[T]{Loading: true}
}

// Resolved reports whether the fetch succeeded.
func (p Projection[T]) Resolved() bool {
	return !p.Loading && p.Value != nil
}

// Failed reports whether the fetch terminated without a value.
func (p Projection[T]) Failed() bool {
	return !p.Loading && p.Value == nil
}

// resolve applies the terminal event.
func (p *Projection[T]) resolve(value T, err error) {
	p.Loading = false
	if err != nil {
		p.Value = nil
		p.Err = err
		return
	}
	p.Value = &value
	p.Err = nil
}

// resolvedMsg is the terminal event of a fetch started with fetchCmd.
//
// seq ties the message to the activation that issued it: a view bumps
// its sequence on every new activation, so a response that arrives after
// teardown or re-activation is discarded instead of mutating state it no
// longer owns.
type resolvedMsg[T any] struct {
	seq   int
	value T
	err   error
}

// fetchCmd runs a single-shot fetch off the event loop and delivers
// exactly one resolvedMsg.
func fetchCmd[T any](seq int, fn func(context.Context) (T, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		value, err := fn(ctx)
		return resolvedMsg[T]{seq: seq, value: value, err: err}
	}
}
