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
	"context"

	"github.com/wardrive/netmapper/pkg/models"
)

// DeviceService is the aggregation surface the HTTP layer depends on.
type DeviceService interface {
	Nearby(ctx context.Context, lat, lon float64, mode string, radius float64) ([]models.Device, error)
	Search(ctx context.Context, searchType, query string, radius float64) ([]models.Device, error)
	Towers(ctx context.Context, lat, lon float64) ([]models.Device, error)
	Stats(ctx context.Context, lat, lon, radius float64) (*models.Statistics, error)
}
