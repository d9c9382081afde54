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

// Package cache provides the keyed TTL cache provider adapters memoize
// remote fetches through. A cache hit and a fresh fetch are behaviorally
// identical; backend failures read as misses.
package cache

import (
	"context"
	"fmt"
	"time"
)

// KV is the minimal keyed cache contract. Get reports a miss for expired
// entries, unknown keys, and backend errors alike.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Key builds a cache key from a provider operation and its rounded
// coordinates. Rounding to four decimals (~11 m) collapses jittery repeat
// queries onto one upstream fetch.
func Key(provider, op string, lat, lon, radius float64) string {
	return fmt.Sprintf("%s:%s:%.4f:%.4f:%.4f", provider, op, lat, lon, radius)
}

// QueryKey builds a cache key for exact-match lookups.
func QueryKey(provider, op, query string) string {
	return fmt.Sprintf("%s:%s:%s", provider, op, query)
}
