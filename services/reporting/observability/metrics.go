// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package observability provides prometheus metrics for the reporting
// service.
//
// Metrics are exposed via the /metrics endpoint when enabled. All
// recording helpers are no-ops until InitMetrics has run, so handlers can
// call them unconditionally.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "reportapp"

const apiSubsystem = "api"

// APIMetrics holds the prometheus metrics for the reporting API.
//
// # Fields
//
//   - RequestsTotal: Counter of API requests by operation
//   - ConflictsTotal: Counter of rejected duplicate-email writes
//   - ReportsCount: Gauge of reports currently stored
//
// # Thread Safety
//
// All operations are thread-safe via prometheus's internal locking.
type APIMetrics struct {
	// RequestsTotal counts requests by operation.
	// Labels: operation (list, get, observations, create, update, delete)
	RequestsTotal *prometheus.CounterVec

	// ConflictsTotal counts writes rejected for a duplicate author email.
	// Labels: operation (create, update)
	ConflictsTotal *prometheus.CounterVec

	// ReportsCount tracks the number of reports in the store.
	ReportsCount prometheus.Gauge
}

// DefaultMetrics is the singleton instance. Initialized by InitMetrics().
var DefaultMetrics *APIMetrics

// InitMetrics initializes and registers the default metrics instance.
// Call once at startup, before serving requests.
func InitMetrics() *APIMetrics {
	if DefaultMetrics != nil {
		return DefaultMetrics
	}

	DefaultMetrics = &APIMetrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: apiSubsystem,
			Name:      "requests_total",
			Help:      "API requests by operation.",
		}, []string{"operation"}),

		ConflictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: apiSubsystem,
			Name:      "conflicts_total",
			Help:      "Writes rejected because the author email is already used.",
		}, []string{"operation"}),

		ReportsCount: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: apiSubsystem,
			Name:      "reports_count",
			Help:      "Number of reports currently stored.",
		}),
	}
	return DefaultMetrics
}

// RecordRequest increments the request counter for an operation.
func RecordRequest(operation string) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.RequestsTotal.WithLabelValues(operation).Inc()
}

// RecordConflict increments the duplicate-email conflict counter.
func RecordConflict(operation string) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.ConflictsTotal.WithLabelValues(operation).Inc()
}

// SetReportCount sets the stored-report gauge.
func SetReportCount(n int) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.ReportsCount.Set(float64(n))
}
