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

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/wardrive/netmapper/pkg/aggregator"
	"github.com/wardrive/netmapper/pkg/classify"
	"github.com/wardrive/netmapper/pkg/geo"
	"github.com/wardrive/netmapper/pkg/models"
	"github.com/wardrive/netmapper/pkg/version"
)

const (
	defaultNearbyRadius = 0.01
	defaultStatsRadius  = 0.05
)

func (s *APIServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.encodeJSONResponse(w, models.HealthResponse{
		Status:    "healthy",
		Timestamp: s.timestamp(),
		Version:   version.GetVersion(),
	})
}

// handleNearby serves GET /api/nearby?lat&lon&mode&radius.
func (s *APIServer) handleNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := geo.ParseCoordinates(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))
	if err != nil {
		writeError(w, err.Error(), statusInvalidInput, http.StatusBadRequest)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = aggregator.ModeWiFi
	}

	radius := parseRadius(r, defaultNearbyRadius)

	devices, err := s.service.Nearby(r.Context(), lat, lon, mode, radius)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.encodeJSONResponse(w, models.DeviceListResponse{
		Devices:   annotate(devices),
		Count:     len(devices),
		Timestamp: s.timestamp(),
		Status:    statusSuccess,
	})
}

// handleSearch serves GET /api/search?type&query&radius.
func (s *APIServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	searchType := r.URL.Query().Get("type")
	query := r.URL.Query().Get("query")
	radius := parseRadius(r, defaultNearbyRadius)

	devices, err := s.service.Search(r.Context(), searchType, query, radius)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.encodeJSONResponse(w, models.DeviceListResponse{
		Devices:   annotate(devices),
		Count:     len(devices),
		Timestamp: s.timestamp(),
		Status:    statusSuccess,
	})
}

// handleStats serves GET /api/stats?lat&lon&radius.
func (s *APIServer) handleStats(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := geo.ParseCoordinates(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))
	if err != nil {
		writeError(w, err.Error(), statusInvalidInput, http.StatusBadRequest)
		return
	}

	radius := parseRadius(r, defaultStatsRadius)

	stats, err := s.service.Stats(r.Context(), lat, lon, radius)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.encodeJSONResponse(w, models.StatsResponse{
		Statistics: *stats,
		Timestamp:  s.timestamp(),
		Status:     statusSuccess,
	})
}

// handleTowers serves GET /api/geo/towers?lat&lon.
func (s *APIServer) handleTowers(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := geo.ParseCoordinates(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))
	if err != nil {
		writeError(w, err.Error(), statusInvalidInput, http.StatusBadRequest)
		return
	}

	towers, err := s.service.Towers(r.Context(), lat, lon)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.encodeJSONResponse(w, models.TowerListResponse{
		Towers:    annotate(towers),
		Count:     len(towers),
		Timestamp: s.timestamp(),
		Status:    statusSuccess,
	})
}

// writeServiceError maps aggregation errors onto HTTP statuses: caller
// input errors become 400s, everything else a 500.
func (s *APIServer) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, aggregator.ErrInvalidInput) {
		writeError(w, err.Error(), statusInvalidInput, http.StatusBadRequest)
		return
	}

	s.logger.Error().Err(err).Msg("Aggregation request failed")
	writeError(w, "Internal server error", statusError, http.StatusInternalServerError)
}

// annotate attaches display icons; responses always carry a list, never
// null.
func annotate(devices []models.Device) []models.AnnotatedDevice {
	annotated := make([]models.AnnotatedDevice, 0, len(devices))

	for _, d := range devices {
		annotated = append(annotated, models.AnnotatedDevice{
			Device: d,
			Icon:   classify.Icon(d.DeviceType),
		})
	}

	return annotated
}

func parseRadius(r *http.Request, fallback float64) float64 {
	raw := r.URL.Query().Get("radius")
	if raw == "" {
		return fallback
	}

	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}

	return radius
}

func (s *APIServer) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
