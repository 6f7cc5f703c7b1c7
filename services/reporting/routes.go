// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package reporting

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all reporting routes with the router.
//
// Description:
//
//	Registers the /reporting CRUD surface plus the health endpoint.
//	The router should already have any required middleware applied.
//
// Endpoints:
//
//	GET    /reporting              - List all reports
//	GET    /reporting/observations - List the observation catalog
//	GET    /reporting/:id          - Get a report by id
//	POST   /reporting              - Create a report
//	PUT    /reporting/:id          - Update a report
//	DELETE /reporting/:id          - Delete a report (idempotent)
//	GET    /healthz                - Health check
func RegisterRoutes(router *gin.Engine, handlers *Handlers) {
	reporting := router.Group("/reporting")
	{
		reporting.GET("", handlers.HandleListReports)
		reporting.GET("/observations", handlers.HandleListObservations)
		reporting.GET("/:id", handlers.HandleGetReport)
		reporting.POST("", handlers.HandleCreateReport)
		reporting.PUT("/:id", handlers.HandleUpdateReport)
		reporting.DELETE("/:id", handlers.HandleDeleteReport)
	}

	router.GET("/healthz", handlers.HandleHealth)
}
