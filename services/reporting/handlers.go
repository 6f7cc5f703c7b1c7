// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reporting

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stephane95000/report-app/services/reporting/observability"
)

// Handlers contains the HTTP handlers for the reporting API.
type Handlers struct {
	store *Store
}

// NewHandlers creates handlers backed by the given store.
func NewHandlers(store *Store) *Handlers {
	return &Handlers{store: store}
}

// HandleListReports handles GET /reporting.
//
// Response:
//
//	200 OK: list of Report in insertion order
func (h *Handlers) HandleListReports(c *gin.Context) {
	observability.RecordRequest("list")
	c.JSON(http.StatusOK, h.store.FindAll())
}

// HandleListObservations handles GET /reporting/observations.
//
// Response:
//
//	200 OK: the full observation catalog
func (h *Handlers) HandleListObservations(c *gin.Context) {
	observability.RecordRequest("observations")
	c.JSON(http.StatusOK, h.store.Observations())
}

// HandleGetReport handles GET /reporting/:id.
//
// Response:
//
//	200 OK: Report
//	400 Bad Request: non-numeric id
//	404 Not Found: no report with that id
func (h *Handlers) HandleGetReport(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleGetReport")
	observability.RecordRequest("get")

	id, ok := reportID(c)
	if !ok {
		return
	}

	report, err := h.store.FindByID(id)
	if err != nil {
		logger.Warn("Report not found", "report_id", id)
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Report not found",
			Code:  "NOT_FOUND",
		})
		return
	}
	c.JSON(http.StatusOK, report)
}

// HandleCreateReport handles POST /reporting.
//
// Request Body:
//
//	CreateReport
//
// Response:
//
//	204 No Content: report created
//	400 Bad Request: invalid body, or {"author":{"email":[...]}} on a
//	duplicate author email
func (h *Handlers) HandleCreateReport(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleCreateReport")
	observability.RecordRequest("create")

	var req CreateReport
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	report, err := h.store.Add(req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			logger.Warn("Duplicate author email", "email_present", req.Author.Email != "")
			observability.RecordConflict("create")
			c.JSON(http.StatusBadRequest, NewEmailConflictErrors())
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to create report",
			Code:  "CREATE_FAILED",
		})
		return
	}

	logger.Info("Report created", "report_id", report.ID, "observations", len(report.Observations))
	observability.SetReportCount(h.store.Len())
	c.Status(http.StatusNoContent)
}

// HandleUpdateReport handles PUT /reporting/:id.
//
// Request Body:
//
//	CreateReport
//
// Response:
//
//	204 No Content: report updated
//	400 Bad Request: invalid body, or the duplicate-email field error body
//	404 Not Found: no report with that id
func (h *Handlers) HandleUpdateReport(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleUpdateReport")
	observability.RecordRequest("update")

	id, ok := reportID(c)
	if !ok {
		return
	}

	var req CreateReport
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	report, err := h.store.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			logger.Warn("Report not found", "report_id", id)
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "Report not found",
				Code:  "NOT_FOUND",
			})
		case errors.Is(err, ErrEmailTaken):
			logger.Warn("Duplicate author email", "report_id", id)
			observability.RecordConflict("update")
			c.JSON(http.StatusBadRequest, NewEmailConflictErrors())
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to update report",
				Code:  "UPDATE_FAILED",
			})
		}
		return
	}

	logger.Info("Report updated", "report_id", report.ID)
	c.Status(http.StatusNoContent)
}

// HandleDeleteReport handles DELETE /reporting/:id.
//
// Deletion is idempotent: removing an absent id still responds 204.
func (h *Handlers) HandleDeleteReport(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleDeleteReport")
	observability.RecordRequest("delete")

	id, ok := reportID(c)
	if !ok {
		return
	}

	h.store.Remove(id)
	logger.Info("Report removed", "report_id", id)
	observability.SetReportCount(h.store.Len())
	c.Status(http.StatusNoContent)
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: ServiceVersion,
	})
}

// reportID parses the :id route parameter. On failure it writes a 400
// response and returns ok=false.
func reportID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid report id",
			Code:  "INVALID_ID",
		})
		return 0, false
	}
	return id, true
}

// getOrCreateRequestID gets or creates a request ID.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
