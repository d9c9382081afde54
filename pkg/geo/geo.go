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

// Package geo validates coordinates and derives the bounding boxes that
// scope provider queries.
package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxRadius caps a search radius, in degrees (~11 km).
const DefaultMaxRadius = 0.1

var (
	ErrMissingCoordinates    = errors.New("missing coordinates")
	ErrCoordinatesNotNumeric = errors.New("coordinates must be numeric")
	ErrInvalidLocation       = errors.New("invalid location format, use: lat,lon")
)

// BoundingBox is a rectangular latitude/longitude region. Derived, never
// stored.
type BoundingBox struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Validate checks that lat and lon fall inside the WGS84 ranges. The error
// names the violated bound and echoes the offending value.
func Validate(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("invalid latitude: %g, must be between -90 and 90", lat)
	}

	if lon < -180 || lon > 180 {
		return fmt.Errorf("invalid longitude: %g, must be between -180 and 180", lon)
	}

	return nil
}

// ClampRadius silently caps radius at maxRadius. A non-positive maxRadius
// selects DefaultMaxRadius.
func ClampRadius(radius, maxRadius float64) float64 {
	if maxRadius <= 0 {
		maxRadius = DefaultMaxRadius
	}

	if radius > maxRadius {
		return maxRadius
	}

	return radius
}

// CalculateBounds returns the search box around a center point. The radius
// is clamped before use; oversized radii shrink the box, they never error.
func CalculateBounds(lat, lon, radius, maxRadius float64) BoundingBox {
	radius = ClampRadius(radius, maxRadius)

	return BoundingBox{
		LatMin: lat - radius,
		LatMax: lat + radius,
		LonMin: lon - radius,
		LonMax: lon + radius,
	}
}

// ParseCoordinates converts raw query values into validated coordinates.
func ParseCoordinates(latStr, lonStr string) (lat, lon float64, err error) {
	if latStr == "" || lonStr == "" {
		return 0, 0, ErrMissingCoordinates
	}

	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, ErrCoordinatesNotNumeric
	}

	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, ErrCoordinatesNotNumeric
	}

	if err = Validate(lat, lon); err != nil {
		return 0, 0, err
	}

	return lat, lon, nil
}

// ParseLocation parses a "lat,lon" query string and validates the result.
func ParseLocation(query string) (lat, lon float64, err error) {
	parts := strings.Split(query, ",")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidLocation
	}

	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, ErrInvalidLocation
	}

	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, ErrInvalidLocation
	}

	if err = Validate(lat, lon); err != nil {
		return 0, 0, err
	}

	return lat, lon, nil
}
