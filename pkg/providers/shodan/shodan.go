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

// Package shodan adapts the Shodan host-search surface into the canonical
// device model, classifying hosts from their service banners.
package shodan

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wardrive/netmapper/pkg/cache"
	"github.com/wardrive/netmapper/pkg/classify"
	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
	"github.com/wardrive/netmapper/pkg/providers"
)

const (
	defaultEndpoint = "https://api.shodan.io"

	// resultLimit caps one geo query; banner-classified hosts are noisy
	// and the presentation layer only plots a handful per area.
	resultLimit = 10

	// bannerLimit truncates free-text service banners before they are
	// stored as device info.
	bannerLimit = 100

	cacheTTL = 10 * time.Minute
)

// Config is the immutable configuration a Provider is constructed with.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Provider queries Shodan for internet-facing hosts near a point.
type Provider struct {
	config Config
	client *providers.Client
	cache  cache.KV
	logger logger.Logger
	now    func() time.Time
}

// New builds a Shodan provider. A nil kv disables response memoization.
func New(config Config, kv cache.KV, log logger.Logger) *Provider {
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}

	componentLog := log.WithComponent("shodan")

	return &Provider{
		config: config,
		client: providers.NewClient(config.Endpoint, config.Timeout, componentLog),
		cache:  kv,
		logger: componentLog,
		now:    time.Now,
	}
}

// SearchGeo returns hosts within radiusKM kilometers of the center point.
// Hosts without geolocation are skipped.
func (p *Provider) SearchGeo(ctx context.Context, lat, lon, radiusKM float64) []models.Device {
	if p.config.APIKey == "" {
		return []models.Device{}
	}

	if radiusKM <= 0 {
		radiusKM = 1
	}

	key := cache.Key("shodan", "geo", lat, lon, radiusKM)
	if devices, ok := providers.CachedDevices(ctx, p.cache, p.logger, key); ok {
		return devices
	}

	query := url.Values{
		"key":   []string{p.config.APIKey},
		"query": []string{fmt.Sprintf("geo:%g,%g,%g", lat, lon, radiusKM)},
		"limit": []string{strconv.Itoa(resultLimit)},
	}

	var resp hostSearchResponse
	if !p.client.GetJSON(ctx, "/shodan/host/search", query, nil, &resp) {
		return []models.Device{}
	}

	devices := make([]models.Device, 0, len(resp.Matches))

	for i := range resp.Matches {
		m := &resp.Matches[i]

		if m.Location.Latitude == nil || m.Location.Longitude == nil {
			continue
		}

		devices = append(devices, p.hostDevice(m))
	}

	providers.StoreDevices(ctx, p.cache, p.logger, key, devices, cacheTTL)

	return devices
}

func (p *Provider) hostDevice(m *match) models.Device {
	vendor := m.Org
	if vendor == "" {
		vendor = "Unknown"
	}

	return models.Device{
		Lat:        *m.Location.Latitude,
		Lon:        *m.Location.Longitude,
		DeviceType: classify.Classify(m.Data, models.DeviceTypeIOT),
		Timestamp:  p.now().UTC().Format(time.RFC3339),
		IP:         m.IPStr,
		Vendor:     vendor,
		Info:       truncate(m.Data, bannerLimit),
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
