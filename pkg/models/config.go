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

import (
	"time"

	"github.com/wardrive/netmapper/pkg/logger"
)

const (
	// DefaultMaxSearchRadius caps a caller-supplied radius, in degrees
	// (~11 km).
	DefaultMaxSearchRadius = 0.1

	// DefaultProviderTimeout bounds a single remote provider call.
	DefaultProviderTimeout = 10 * time.Second

	// DefaultRequestTimeout bounds one whole fan-out across providers.
	DefaultRequestTimeout = 30 * time.Second
)

// WigleConfig holds the WiGLE API credentials. Both fields empty means the
// provider is unconfigured and always returns empty result sets.
type WigleConfig struct {
	APIName  string `json:"api_name,omitempty"`
	APIToken string `json:"api_token,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// OpenCellIDConfig holds the cell-tower provider credentials.
type OpenCellIDConfig struct {
	APIKey   string `json:"api_key,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// ShodanConfig holds the internet-host provider credentials.
type ShodanConfig struct {
	APIKey   string `json:"api_key,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// CacheConfig selects the response cache backend. An empty RedisAddr falls
// back to the in-process cache.
type CacheConfig struct {
	RedisAddr string `json:"redis_addr,omitempty"`
}

// RateLimitConfig controls the per-client request throttle.
type RateLimitConfig struct {
	RequestsPerMinute int `json:"requests_per_minute,omitempty"`
	BurstSize         int `json:"burst_size,omitempty"`
}

// Config is the process configuration for the netmapper service. Provider
// credentials are copied into immutable per-adapter configs at construction;
// adapters never read ambient state.
type Config struct {
	ListenAddr      string           `json:"listen_addr"`
	APIKey          string           `json:"api_key,omitempty"`
	MaxSearchRadius float64          `json:"max_search_radius,omitempty"`
	ProviderTimeout Duration         `json:"provider_timeout,omitempty"`
	RequestTimeout  Duration         `json:"request_timeout,omitempty"`
	Logging         logger.Config    `json:"logging"`
	Wigle           WigleConfig      `json:"wigle"`
	OpenCellID      OpenCellIDConfig `json:"opencellid"`
	Shodan          ShodanConfig     `json:"shodan"`
	Cache           CacheConfig      `json:"cache"`
	RateLimit       RateLimitConfig  `json:"rate_limit"`
}

// Validate applies defaults and rejects unusable settings.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}

	if c.MaxSearchRadius <= 0 {
		c.MaxSearchRadius = DefaultMaxSearchRadius
	}

	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = Duration(DefaultProviderTimeout)
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = Duration(DefaultRequestTimeout)
	}

	return nil
}
