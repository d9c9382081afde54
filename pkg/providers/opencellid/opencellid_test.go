package opencellid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrive/netmapper/pkg/cache"
	"github.com/wardrive/netmapper/pkg/logger"
	"github.com/wardrive/netmapper/pkg/models"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, kv cache.KV) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{APIKey: "token", Endpoint: server.URL}, kv, logger.NewTestLogger())
}

func TestSearchTowers(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/process.php", r.URL.Path)

		var req locateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "token", req.Token)
		assert.InDelta(t, 51.505, req.Lat, 1e-9)
		assert.InDelta(t, -0.09, req.Lon, 1e-9)
		assert.Zero(t, req.Address)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"cells": [
				{"lat": 51.504, "lon": -0.088, "cellid": 123456789, "radio": "lte", "signal": -95, "accuracy": 900, "updated": 1717243200},
				{"lat": 51.506, "lon": -0.092, "cellid": 987654321, "radio": "", "signal": -101, "accuracy": 1200, "updated": "2025-06-01 12:00:00"}
			]
		}`))
	}, nil)

	devices := p.SearchTowers(context.Background(), 51.505, -0.09)
	require.Len(t, devices, 2)

	assert.Equal(t, models.DeviceTypeCellTower, devices[0].DeviceType)
	assert.Equal(t, "123456789", devices[0].CellID)
	assert.Equal(t, "LTE Tower", devices[0].Vendor)
	assert.Equal(t, "1717243200", devices[0].Timestamp)
	require.NotNil(t, devices[0].Signal)
	assert.Equal(t, -95, *devices[0].Signal)
	require.NotNil(t, devices[0].Accuracy)
	assert.Equal(t, 900, *devices[0].Accuracy)

	assert.Equal(t, "UNKNOWN Tower", devices[1].Vendor)
	assert.Equal(t, "2025-06-01 12:00:00", devices[1].Timestamp)
}

func TestSearchTowersGeneratesTimestampWhenAbsent(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "cells": [{"lat": 51.5, "lon": -0.09, "cellid": 1, "radio": "gsm"}]}`))
	}, nil)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	devices := p.SearchTowers(context.Background(), 51.5, -0.09)
	require.Len(t, devices, 1)
	assert.Equal(t, "2025-06-01T12:00:00Z", devices[0].Timestamp)
}

func TestSearchTowersNonOKStatus(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "error", "message": "Invalid token"}`))
	}, nil)

	devices := p.SearchTowers(context.Background(), 51.5, -0.09)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
}

func TestSearchTowersUnconfigured(t *testing.T) {
	called := false

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	t.Cleanup(server.Close)

	p := New(Config{Endpoint: server.URL}, nil, logger.NewTestLogger())

	devices := p.SearchTowers(context.Background(), 51.5, -0.09)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
	assert.False(t, called)
}

func TestSearchTowersTransportFailure(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	devices := p.SearchTowers(context.Background(), 51.5, -0.09)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
}

func TestSearchTowersMemoizes(t *testing.T) {
	calls := 0

	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok", "cells": [{"lat": 51.5, "lon": -0.09, "cellid": 1, "radio": "lte", "updated": 1717243200}]}`))
	}, cache.NewMemory())

	ctx := context.Background()

	first := p.SearchTowers(ctx, 51.5, -0.09)
	second := p.SearchTowers(ctx, 51.5, -0.09)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}
