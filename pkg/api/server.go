/*
 * Copyright 2025 Wardrive Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api provides the HTTP API server for netmapper.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 45 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// APIServer exposes the aggregation service over HTTP.
type APIServer struct {
	router     *mux.Router
	service    DeviceService
	logger     logger.Logger
	apiKey     string
	rateLimit  func(http.Handler) http.Handler
	httpServer *http.Server
	now        func() time.Time
}

// NewAPIServer creates a new API server instance with the given options.
func NewAPIServer(options ...func(server *APIServer)) *APIServer {
	s := &APIServer{
		router: mux.NewRouter(),
		logger: logger.NewTestLogger(),
		now:    time.Now,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithDeviceService sets the aggregation service backing the endpoints.
func WithDeviceService(service DeviceService) func(*APIServer) {
	return func(server *APIServer) {
		server.service = service
	}
}

// WithLogger sets the request logger.
func WithLogger(log logger.Logger) func(*APIServer) {
	return func(server *APIServer) {
		server.logger = log.WithComponent("api")
	}
}

// WithAPIKey enables the X-API-Key guard on the /api routes. An empty key
// leaves the surface open.
func WithAPIKey(apiKey string) func(*APIServer) {
	return func(server *APIServer) {
		server.apiKey = apiKey
	}
}

// WithRateLimiter wraps the /api routes with a rate-limit middleware.
func WithRateLimiter(middleware func(http.Handler) http.Handler) func(*APIServer) {
	return func(server *APIServer) {
		server.rateLimit = middleware
	}
}

// setupRoutes configures middleware and the HTTP routes.
func (s *APIServer) setupRoutes() {
	s.router.Use(s.commonMiddleware)
	s.router.Use(s.recoverMiddleware)

	if s.rateLimit != nil {
		s.router.Use(s.rateLimit)
	}

	s.router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet, http.MethodOptions)

	protected := s.router.PathPrefix("/api").Subrouter()
	protected.Use(s.apiKeyMiddleware)
	protected.HandleFunc("/nearby", s.handleNearby).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/geo/towers", s.handleTowers).Methods(http.MethodGet, http.MethodOptions)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorCode(w, "Resource not found", statusError, http.StatusNotFound)
	})
}

// Router returns the configured handler, mainly for tests.
func (s *APIServer) Router() http.Handler {
	return s.router
}

// Start begins serving on addr and blocks until the listener fails or
// Shutdown is called.
func (s *APIServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the listener.
func (s *APIServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

const (
	statusSuccess      = "success"
	statusError        = "error"
	statusInvalidInput = "invalid_input"
)

func (s *APIServer) encodeJSONResponse(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, message, status string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errResponse := models.ErrorResponse{
		Error:  message,
		Status: status,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

func writeErrorCode(w http.ResponseWriter, message, status string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errResponse := models.ErrorResponse{
		Error:  message,
		Status: status,
		Code:   statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
