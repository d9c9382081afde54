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

package providers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wardrive/netmapper/pkg/cache"
	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
)

// CachedDevices reads a memoized device list. A nil kv, a miss, and an
// undecodable entry all read as absent.
func CachedDevices(ctx context.Context, kv cache.KV, log logger.Logger, key string) ([]models.Device, bool) {
	if kv == nil {
		return nil, false
	}

	raw, ok := kv.Get(ctx, key)
	if !ok {
		return nil, false
	}

	var devices []models.Device
	if err := json.Unmarshal(raw, &devices); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return nil, false
	}

	return devices, true
}

// StoreDevices memoizes a device list under key for ttl.
func StoreDevices(ctx context.Context, kv cache.KV, log logger.Logger, key string, devices []models.Device, ttl time.Duration) {
	if kv == nil {
		return
	}

	raw, err := json.Marshal(devices)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}

	kv.Set(ctx, key, raw, ttl)
}
