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

package aggregator

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/wardrive/netmapper/pkg/geo"
	"github.com/wardrive/netmapper/pkg/models"
)

// topVendorLimit caps the vendor leaderboard in a statistics reduction.
const topVendorLimit = 10

// Stats reduces the WiFi, Bluetooth and cell-tower surfaces around a point
// into aggregate statistics.
func (s *Service) Stats(ctx context.Context, lat, lon, radius float64) (*models.Statistics, error) {
	if err := geo.Validate(lat, lon); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	radius = geo.ClampRadius(radius, s.config.MaxSearchRadius)

	devices := s.collect(ctx, []fetch{
		s.wifiFetch(lat, lon, radius),
		s.bluetoothFetch(lat, lon, radius),
		s.towerFetch(lat, lon),
	})

	return reduce(devices, lat, lon, radius), nil
}

// reduce folds a combined device list into counts and averages.
func reduce(devices []models.Device, lat, lon, radius float64) *models.Statistics {
	deviceTypes := make(map[string]int)
	vendors := make(map[string]int)

	var (
		signalSum   int
		signalCount int
	)

	for i := range devices {
		d := &devices[i]

		deviceTypes[string(d.DeviceType)]++

		if d.Vendor != "" {
			vendors[d.Vendor]++
		}

		if d.Signal != nil {
			signalSum += *d.Signal
			signalCount++
		}
	}

	var averageSignal *float64

	if signalCount > 0 {
		avg := round2(float64(signalSum) / float64(signalCount))
		averageSignal = &avg
	}

	return &models.Statistics{
		TotalDevices:  len(devices),
		DeviceTypes:   deviceTypes,
		TopVendors:    topVendors(vendors),
		AverageSignal: averageSignal,
		SearchArea: models.SearchArea{
			Center:   models.GeoPoint{Lat: lat, Lon: lon},
			RadiusKM: round2(radius * degreesToKM),
		},
	}
}

// topVendors orders vendors by descending count, breaking ties by name so
// the leaderboard is deterministic, and keeps the top ten.
func topVendors(vendors map[string]int) []models.VendorCount {
	counts := make([]models.VendorCount, 0, len(vendors))
	for vendor, count := range vendors {
		counts = append(counts, models.VendorCount{Vendor: vendor, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}

		return counts[i].Vendor < counts[j].Vendor
	})

	if len(counts) > topVendorLimit {
		counts = counts[:topVendorLimit]
	}

	return counts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
