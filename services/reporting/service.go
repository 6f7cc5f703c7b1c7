// Copyright (C) 2025 The report-app authors (github.com/stephane95000/report-app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package reporting implements the report CRUD service.
//
// # Description
//
// The service owns an in-memory report store with a fixed observation
// catalog and exposes it over HTTP:
//
//   - GET    /reporting              - list reports
//   - GET    /reporting/observations - list the observation catalog
//   - GET    /reporting/:id          - get one report
//   - POST   /reporting              - create a report
//   - PUT    /reporting/:id          - update a report
//   - DELETE /reporting/:id          - delete a report
//
// Reports denormalize observation catalog entries at write time and the
// store rejects writes that would duplicate an author email. Persistence
// across restarts is out of scope; the store is process-local state.
//
// # Thread Safety
//
// The store serializes all reads and writes; handlers may run on any gin
// worker goroutine.
package reporting

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stephane95000/report-app/services/reporting/observability"
)

// Config configures the reporting service.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// AllowOrigins lists origins allowed by CORS. Empty disables CORS.
	AllowOrigins []string

	// EnableMetrics exposes prometheus metrics on /metrics.
	EnableMetrics bool
}

// Service is the reporting HTTP service.
//
// Run() blocks until the server stops. A Service is initialized once and
// Run is called at most once per instance.
type Service interface {
	// Run starts the HTTP server and blocks until it exits.
	Run() error

	// Router returns the configured gin engine. Exposed for tests.
	Router() *gin.Engine

	// Store returns the backing report store.
	Store() *Store
}

type service struct {
	cfg    Config
	store  *Store
	router *gin.Engine
}

// New creates a reporting service.
//
// Description:
//
//	Creates the store, initializes prometheus metrics when enabled, and
//	builds the router with CORS middleware and all routes registered.
func New(cfg Config) Service {
	if cfg.EnableMetrics {
		observability.InitMetrics()
	}

	s := &service{
		cfg:   cfg,
		store: NewStore(),
	}
	s.initRouter()
	return s
}

// Run starts the HTTP server. Blocks until the server exits.
func (s *service) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	slog.Info("Reporting service listening", "addr", addr, "version", ServiceVersion)
	return s.router.Run(addr)
}

func (s *service) Router() *gin.Engine {
	return s.router
}

func (s *service) Store() *Store {
	return s.store
}

// initRouter creates the gin engine, applies middleware, and registers
// all routes.
func (s *service) initRouter() {
	s.router = gin.Default()

	if len(s.cfg.AllowOrigins) > 0 {
		s.router.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.AllowOrigins,
			AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Type", "Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	RegisterRoutes(s.router, NewHandlers(s.store))

	if s.cfg.EnableMetrics {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}
