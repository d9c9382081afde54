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

// Package wigle adapts the WiGLE network and bluetooth search surfaces into
// the canonical device model.
package wigle

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/wardrive/netmapper/pkg/cache"
	"github.com/wardrive/netmapper/pkg/classify"
	"github.com/wardrive/netmapper/pkg/geo"
	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
	"github.com/wardrive/netmapper/pkg/providers"
)

const (
	defaultEndpoint = "https://api.wigle.net/api/v2"

	cacheTTL = 5 * time.Minute
)

// Config is the immutable configuration a Provider is constructed with.
type Config struct {
	APIName   string
	APIToken  string
	Endpoint  string
	Timeout   time.Duration
	MaxRadius float64
}

// Provider queries WiGLE for WiFi networks and Bluetooth devices.
type Provider struct {
	config Config
	client *providers.Client
	cache  cache.KV
	logger logger.Logger
}

// New builds a WiGLE provider. A nil kv disables response memoization.
func New(config Config, kv cache.KV, log logger.Logger) *Provider {
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}

	componentLog := log.WithComponent("wigle")

	return &Provider{
		config: config,
		client: providers.NewClient(config.Endpoint, config.Timeout, componentLog),
		cache:  kv,
		logger: componentLog,
	}
}

func (p *Provider) configured() bool {
	return p.config.APIName != "" && p.config.APIToken != ""
}

func (p *Provider) auth() *providers.BasicAuth {
	return &providers.BasicAuth{Username: p.config.APIName, Password: p.config.APIToken}
}

// SearchNetworks returns WiFi networks inside the bounding box around the
// center point.
func (p *Provider) SearchNetworks(ctx context.Context, lat, lon, radius float64) []models.Device {
	if !p.configured() {
		return []models.Device{}
	}

	key := cache.Key("wigle", "networks", lat, lon, radius)
	if devices, ok := p.cached(ctx, key); ok {
		return devices
	}

	var resp searchResponse
	if !p.client.GetJSON(ctx, "/network/search", p.boundsQuery(lat, lon, radius), p.auth(), &resp) {
		return []models.Device{}
	}

	devices := make([]models.Device, 0, len(resp.Results))
	for i := range resp.Results {
		devices = append(devices, p.networkDevice(&resp.Results[i]))
	}

	p.store(ctx, key, devices)

	return devices
}

// SearchBluetooth returns Bluetooth devices inside the bounding box around
// the center point.
func (p *Provider) SearchBluetooth(ctx context.Context, lat, lon, radius float64) []models.Device {
	if !p.configured() {
		return []models.Device{}
	}

	key := cache.Key("wigle", "bluetooth", lat, lon, radius)
	if devices, ok := p.cached(ctx, key); ok {
		return devices
	}

	var resp searchResponse
	if !p.client.GetJSON(ctx, "/bluetooth/search", p.boundsQuery(lat, lon, radius), p.auth(), &resp) {
		return []models.Device{}
	}

	devices := make([]models.Device, 0, len(resp.Results))
	for i := range resp.Results {
		devices = append(devices, p.bluetoothDevice(&resp.Results[i]))
	}

	p.store(ctx, key, devices)

	return devices
}

// SearchBySSID is an exact-match network-name lookup, unconstrained by any
// bounding box.
func (p *Provider) SearchBySSID(ctx context.Context, ssid string) []models.Device {
	return p.searchExact(ctx, url.Values{"ssid": []string{ssid}})
}

// SearchByBSSID is an exact-match hardware-address lookup, unconstrained by
// any bounding box.
func (p *Provider) SearchByBSSID(ctx context.Context, bssid string) []models.Device {
	return p.searchExact(ctx, url.Values{"netid": []string{bssid}})
}

func (p *Provider) searchExact(ctx context.Context, query url.Values) []models.Device {
	if !p.configured() {
		return []models.Device{}
	}

	var resp searchResponse
	if !p.client.GetJSON(ctx, "/network/search", query, p.auth(), &resp) {
		return []models.Device{}
	}

	devices := make([]models.Device, 0, len(resp.Results))
	for i := range resp.Results {
		devices = append(devices, p.networkDevice(&resp.Results[i]))
	}

	return devices
}

func (p *Provider) boundsQuery(lat, lon, radius float64) url.Values {
	bounds := geo.CalculateBounds(lat, lon, radius, p.config.MaxRadius)

	return url.Values{
		"latrange1":  []string{formatCoord(bounds.LatMin)},
		"latrange2":  []string{formatCoord(bounds.LatMax)},
		"longrange1": []string{formatCoord(bounds.LonMin)},
		"longrange2": []string{formatCoord(bounds.LonMax)},
	}
}

func (p *Provider) networkDevice(r *record) models.Device {
	return models.Device{
		Lat:        r.TriLat,
		Lon:        r.TriLon,
		DeviceType: classify.Classify(r.SSID, models.DeviceTypeRouter),
		Timestamp:  r.LastUpdate,
		SSID:       r.SSID,
		BSSID:      r.NetID,
		Vendor:     r.Vendor,
		Signal:     r.Level,
	}
}

func (p *Provider) bluetoothDevice(r *record) models.Device {
	name := r.Name
	if name == "" {
		name = r.NetID
	}

	vendor := r.Type
	if vendor == "" {
		vendor = "Bluetooth"
	}

	return models.Device{
		Lat:        r.TriLat,
		Lon:        r.TriLon,
		DeviceType: classify.Classify(name, models.DeviceTypeBluetooth),
		Timestamp:  r.LastUpdate,
		SSID:       name,
		BSSID:      r.NetID,
		Vendor:     vendor,
		Signal:     r.Level,
	}
}

func (p *Provider) cached(ctx context.Context, key string) ([]models.Device, bool) {
	return providers.CachedDevices(ctx, p.cache, p.logger, key)
}

func (p *Provider) store(ctx context.Context, key string, devices []models.Device) {
	providers.StoreDevices(ctx, p.cache, p.logger, key, devices, cacheTTL)
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%g", v)
}
