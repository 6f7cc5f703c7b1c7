// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package reportclient is the typed HTTP client for the reporting API.
//
// # Description
//
// The client wraps the /reporting REST surface and classifies transport
// failures exactly once, at this boundary:
//
//   - 404                               -> ErrNotFound
//   - 400 with the author.email marker  -> *ConflictError{Field: "email"}
//   - any other non-2xx                 -> *APIError carrying the status
//
// Consumers branch on the error type with errors.Is/errors.As instead of
// re-parsing response bodies.
//
// # Thread Safety
//
// A Client is safe for concurrent use; it holds no mutable state beyond
// the underlying http.Client.
package reportclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/stephane95000/report-app/services/reporting"
)

// ErrNotFound indicates the requested report id does not exist.
var ErrNotFound = errors.New("report not found")

// ConflictError indicates the write was rejected because it would
// duplicate a field that must stay unique across reports.
type ConflictError struct {
	// Field names the conflicting field ("email").
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on field %q", e.Field)
}

// APIError is an unclassified API failure. The status and body are kept
// so callers (and tests) are not forced to guess the cause.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.Status)
}

// Client calls the reporting API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:12400".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// List fetches all reports.
func (c *Client) List(ctx context.Context) ([]reporting.Report, error) {
	var reports []reporting.Report
	if err := c.getJSON(ctx, "/reporting", &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Get fetches one report by id. Returns ErrNotFound if the id is absent.
func (c *Client) Get(ctx context.Context, id int) (reporting.Report, error) {
	var report reporting.Report
	if err := c.getJSON(ctx, fmt.Sprintf("/reporting/%d", id), &report); err != nil {
		return reporting.Report{}, err
	}
	return report, nil
}

// Observations fetches the observation catalog.
func (c *Client) Observations(ctx context.Context) ([]reporting.Observation, error) {
	var observations []reporting.Observation
	if err := c.getJSON(ctx, "/reporting/observations", &observations); err != nil {
		return nil, err
	}
	return observations, nil
}

// Create submits a new report.
func (c *Client) Create(ctx context.Context, req reporting.CreateReport) error {
	return c.write(ctx, http.MethodPost, "/reporting", req)
}

// Update replaces the report with the given id.
func (c *Client) Update(ctx context.Context, id int, req reporting.CreateReport) error {
	return c.write(ctx, http.MethodPut, fmt.Sprintf("/reporting/%d", id), req)
}

// Delete removes the report with the given id. Deleting an absent id
// succeeds; the API is idempotent.
func (c *Client) Delete(ctx context.Context, id int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+fmt.Sprintf("/reporting/%d", id), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return classify(resp)
}

// getJSON performs a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := classify(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// write performs a POST or PUT with a JSON body. A 204 is success.
func (c *Client) write(ctx context.Context, method, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return classify(resp)
}

// classify maps a non-2xx response to the client error taxonomy. The
// body is read here so later decode steps see an untouched stream only
// on success.
func classify(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusBadRequest && isEmailConflict(body) {
		return &ConflictError{Field: "email"}
	}
	return &APIError{Status: resp.StatusCode, Body: string(body)}
}

// isEmailConflict reports whether a 400 body carries the duplicate-email
// marker at the author.email field path.
func isEmailConflict(body []byte) bool {
	var fields reporting.FieldErrors
	if err := json.Unmarshal(body, &fields); err != nil {
		return false
	}
	return slices.Contains(fields["author"]["email"], reporting.EmailConflictMessage)
}
