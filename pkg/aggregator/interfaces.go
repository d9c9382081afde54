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

	"github.com/wardrive/netmapper/pkg/models"
)

// NetworkSearcher is the WiFi/Bluetooth registry surface. Implementations
// are fail-open: they return empty lists on any upstream failure.
type NetworkSearcher interface {
	SearchNetworks(ctx context.Context, lat, lon, radius float64) []models.Device
	SearchBluetooth(ctx context.Context, lat, lon, radius float64) []models.Device
	SearchBySSID(ctx context.Context, ssid string) []models.Device
	SearchByBSSID(ctx context.Context, bssid string) []models.Device
}

// TowerSearcher is the cell-tower registry surface.
type TowerSearcher interface {
	SearchTowers(ctx context.Context, lat, lon float64) []models.Device
}

// HostSearcher is the internet-host scanner surface.
type HostSearcher interface {
	SearchGeo(ctx context.Context, lat, lon, radiusKM float64) []models.Device
}
