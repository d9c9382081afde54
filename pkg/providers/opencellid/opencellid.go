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

// Package opencellid adapts the unwiredlabs cell-location surface into the
// canonical device model. Every record it produces is a cell tower.
package opencellid

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/wardrive/netmapper/pkg/cache"
	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
	"github.com/wardrive/netmapper/pkg/providers"
)

const (
	defaultEndpoint = "https://us1.unwiredlabs.com/v2"

	cacheTTL = 10 * time.Minute
)

// Config is the immutable configuration a Provider is constructed with.
type Config struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// Provider queries the cell-tower registry around a center point.
type Provider struct {
	config Config
	client *providers.Client
	cache  cache.KV
	logger logger.Logger
	now    func() time.Time
}

// New builds an OpenCellID provider. A nil kv disables response
// memoization.
func New(config Config, kv cache.KV, log logger.Logger) *Provider {
	if config.Endpoint == "" {
		config.Endpoint = defaultEndpoint
	}

	componentLog := log.WithComponent("opencellid")

	return &Provider{
		config: config,
		client: providers.NewClient(config.Endpoint, config.Timeout, componentLog),
		cache:  kv,
		logger: componentLog,
		now:    time.Now,
	}
}

// SearchTowers returns the cell towers visible from the center point. An
// unconfigured key, a failed call, and a non-ok remote status all yield an
// empty list.
func (p *Provider) SearchTowers(ctx context.Context, lat, lon float64) []models.Device {
	if p.config.APIKey == "" {
		return []models.Device{}
	}

	key := cache.Key("opencellid", "towers", lat, lon, 0)
	if devices, ok := providers.CachedDevices(ctx, p.cache, p.logger, key); ok {
		return devices
	}

	body := locateRequest{Token: p.config.APIKey, Lat: lat, Lon: lon}

	var resp locateResponse
	if !p.client.PostJSON(ctx, "/process.php", body, &resp) {
		return []models.Device{}
	}

	if resp.Status != "ok" {
		p.logger.Warn().Str("status", resp.Status).Msg("cell lookup reported non-ok status")
		return []models.Device{}
	}

	devices := make([]models.Device, 0, len(resp.Cells))
	for i := range resp.Cells {
		devices = append(devices, p.towerDevice(&resp.Cells[i]))
	}

	providers.StoreDevices(ctx, p.cache, p.logger, key, devices, cacheTTL)

	return devices
}

func (p *Provider) towerDevice(c *cell) models.Device {
	radio := c.Radio
	if radio == "" {
		radio = "unknown"
	}

	// The registry reports "updated" as either an epoch number or a
	// formatted string depending on the plan tier.
	timestamp := ""

	switch v := c.Updated.(type) {
	case string:
		timestamp = v
	case float64:
		timestamp = strconv.FormatInt(int64(v), 10)
	}

	if timestamp == "" {
		timestamp = p.now().UTC().Format(time.RFC3339)
	}

	return models.Device{
		Lat:        c.Lat,
		Lon:        c.Lon,
		DeviceType: models.DeviceTypeCellTower,
		Timestamp:  timestamp,
		CellID:     strconv.FormatInt(c.CellID, 10),
		Vendor:     strings.ToUpper(radio) + " Tower",
		Signal:     c.Signal,
		Accuracy:   c.Accuracy,
	}
}
