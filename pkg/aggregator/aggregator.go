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

// Package aggregator fans a discovery request out to the provider adapters
// and merges their canonical device lists. Provider outages degrade result
// completeness, never request success.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wardrive/netmapper/pkg/geo"
	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
)

// Discovery modes.
const (
	ModeWiFi      = "wifi"
	ModeBluetooth = "bluetooth"
	ModeAll       = "all"
)

// Search discriminators.
const (
	SearchTypeLocation = "location"
	SearchTypeSSID     = "ssid"
	SearchTypeBSSID    = "bssid"
	SearchTypeNetwork  = "network"
)

// degreesToKM approximates one degree of latitude in kilometers.
const degreesToKM = 111

// ErrInvalidInput marks caller input errors: they are detected before any
// provider call and are never retried.
var ErrInvalidInput = errors.New("invalid input")

// Config bounds every aggregation request.
type Config struct {
	// MaxSearchRadius caps caller radii, in degrees.
	MaxSearchRadius float64

	// RequestTimeout bounds one whole fan-out; a hung provider cannot
	// hold a request past it.
	RequestTimeout time.Duration
}

// Service merges the independent provider surfaces behind one discovery
// API. Providers share no mutable state, so calls fan out concurrently
// with one in-flight call per adapter.
type Service struct {
	config   Config
	networks NetworkSearcher
	towers   TowerSearcher
	hosts    HostSearcher
	logger   logger.Logger
}

// New wires the aggregator to its provider adapters.
func New(config Config, networks NetworkSearcher, towers TowerSearcher, hosts HostSearcher, log logger.Logger) *Service {
	if config.MaxSearchRadius <= 0 {
		config.MaxSearchRadius = models.DefaultMaxSearchRadius
	}

	if config.RequestTimeout <= 0 {
		config.RequestTimeout = models.DefaultRequestTimeout
	}

	return &Service{
		config:   config,
		networks: networks,
		towers:   towers,
		hosts:    hosts,
		logger:   log.WithComponent("aggregator"),
	}
}

type fetch func(ctx context.Context) []models.Device

// Nearby returns the devices visible around a point. The mode selects the
// provider set: bluetooth only, all surfaces, or the default WiFi + cell
// towers. Results are concatenated, never deduplicated.
func (s *Service) Nearby(ctx context.Context, lat, lon float64, mode string, radius float64) ([]models.Device, error) {
	if err := geo.Validate(lat, lon); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	radius = geo.ClampRadius(radius, s.config.MaxSearchRadius)

	s.logger.Info().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("mode", mode).
		Float64("radius", radius).
		Msg("nearby search")

	var fetches []fetch

	switch mode {
	case ModeBluetooth:
		fetches = []fetch{s.bluetoothFetch(lat, lon, radius)}
	case ModeAll:
		fetches = []fetch{
			s.wifiFetch(lat, lon, radius),
			s.bluetoothFetch(lat, lon, radius),
			s.towerFetch(lat, lon),
			s.hostFetch(lat, lon, radius),
		}
	default:
		fetches = []fetch{
			s.wifiFetch(lat, lon, radius),
			s.towerFetch(lat, lon),
		}
	}

	return s.collect(ctx, fetches), nil
}

// Search dispatches on the query-type discriminator. The network type
// requires a real "lat,lon" location; there is no global fallback query.
func (s *Service) Search(ctx context.Context, searchType, query string, radius float64) ([]models.Device, error) {
	if searchType == "" || query == "" {
		return nil, fmt.Errorf("%w: missing search parameters", ErrInvalidInput)
	}

	radius = geo.ClampRadius(radius, s.config.MaxSearchRadius)

	s.logger.Info().
		Str("type", searchType).
		Str("query", query).
		Msg("search")

	switch searchType {
	case SearchTypeLocation:
		lat, lon, err := geo.ParseLocation(query)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		return s.collect(ctx, []fetch{
			s.wifiFetch(lat, lon, radius),
			s.towerFetch(lat, lon),
			s.hostFetch(lat, lon, radius),
		}), nil

	case SearchTypeSSID:
		return s.networks.SearchBySSID(ctx, query), nil

	case SearchTypeBSSID:
		if !validBSSID(query) {
			return nil, fmt.Errorf("%w: invalid BSSID format", ErrInvalidInput)
		}

		return s.networks.SearchByBSSID(ctx, query), nil

	case SearchTypeNetwork:
		lat, lon, err := geo.ParseLocation(query)
		if err != nil {
			return nil, fmt.Errorf("%w: network search requires a lat,lon location: %w", ErrInvalidInput, err)
		}

		return s.collect(ctx, []fetch{s.hostFetch(lat, lon, radius)}), nil

	default:
		return nil, fmt.Errorf("%w: unsupported search type: %s", ErrInvalidInput, searchType)
	}
}

// Towers returns only the cell towers around a point.
func (s *Service) Towers(ctx context.Context, lat, lon float64) ([]models.Device, error) {
	if err := geo.Validate(lat, lon); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.collect(ctx, []fetch{s.towerFetch(lat, lon)}), nil
}

// collect runs the fetches concurrently under one request deadline and
// concatenates whatever they deliver. A provider that misses the deadline
// contributes nothing; the others still land.
func (s *Service) collect(ctx context.Context, fetches []fetch) []models.Device {
	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	var wg sync.WaitGroup

	results := make(chan []models.Device, len(fetches))

	for _, f := range fetches {
		wg.Add(1)

		go func(f fetch) {
			defer wg.Done()

			results <- f(ctx)
		}(f)
	}

	wg.Wait()
	close(results)

	devices := make([]models.Device, 0)
	for batch := range results {
		devices = append(devices, batch...)
	}

	return devices
}

func (s *Service) wifiFetch(lat, lon, radius float64) fetch {
	return func(ctx context.Context) []models.Device {
		return s.networks.SearchNetworks(ctx, lat, lon, radius)
	}
}

func (s *Service) bluetoothFetch(lat, lon, radius float64) fetch {
	return func(ctx context.Context) []models.Device {
		return s.networks.SearchBluetooth(ctx, lat, lon, radius)
	}
}

func (s *Service) towerFetch(lat, lon float64) fetch {
	return func(ctx context.Context) []models.Device {
		return s.towers.SearchTowers(ctx, lat, lon)
	}
}

func (s *Service) hostFetch(lat, lon, radius float64) fetch {
	return func(ctx context.Context) []models.Device {
		return s.hosts.SearchGeo(ctx, lat, lon, radius*degreesToKM)
	}
}

// validBSSID accepts hardware-address filters composed of hex digits and
// colon separators only.
func validBSSID(query string) bool {
	for _, c := range query {
		if !strings.ContainsRune("0123456789abcdefABCDEF:", c) {
			return false
		}
	}

	return true
}
