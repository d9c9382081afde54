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

package models

// AnnotatedDevice is a canonical device plus its display icon, the shape
// handed to the presentation layer.
type AnnotatedDevice struct {
	Device
	Icon string `json:"icon"`
}

// DeviceListResponse is the flat, provider-agnostic record set exposed by
// the device endpoints.
type DeviceListResponse struct {
	Devices   []AnnotatedDevice `json:"devices"`
	Count     int               `json:"count"`
	Timestamp string            `json:"timestamp"`
	Status    string            `json:"status"`
}

// TowerListResponse mirrors DeviceListResponse for the cell-tower endpoint.
type TowerListResponse struct {
	Towers    []AnnotatedDevice `json:"towers"`
	Count     int               `json:"count"`
	Timestamp string            `json:"timestamp"`
	Status    string            `json:"status"`
}

// StatsResponse wraps Statistics for the HTTP boundary.
type StatsResponse struct {
	Statistics
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error      string `json:"error"`
	Status     string `json:"status"`
	Code       int    `json:"code,omitempty"`
	RetryAfter string `json:"retry_after,omitempty"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
