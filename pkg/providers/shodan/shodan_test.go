package shodan

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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

	p := New(Config{APIKey: "key", Endpoint: server.URL}, kv, logger.NewTestLogger())
	p.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	return p
}

func TestSearchGeo(t *testing.T) {
	longBanner := strings.Repeat("x", 150)

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shodan/host/search", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "key", q.Get("key"))
		assert.Equal(t, "geo:51.505,-0.09,1", q.Get("query"))
		assert.Equal(t, "10", q.Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"matches": [
				{"data": "RTSP/1.0 IP Camera ready", "ip_str": "203.0.113.10", "org": "ExampleNet", "location": {"latitude": 51.504, "longitude": -0.088}},
				{"data": "` + longBanner + `", "ip_str": "203.0.113.11", "org": "", "location": {"latitude": 51.506, "longitude": -0.091}},
				{"data": "no location on this one", "ip_str": "203.0.113.12", "org": "Elsewhere", "location": {}}
			]
		}`))
	}, nil)

	devices := p.SearchGeo(context.Background(), 51.505, -0.09, 1)
	require.Len(t, devices, 2, "hosts without geolocation are skipped")

	assert.Equal(t, models.DeviceTypeCamera, devices[0].DeviceType)
	assert.Equal(t, "203.0.113.10", devices[0].IP)
	assert.Equal(t, "ExampleNet", devices[0].Vendor)
	assert.Equal(t, "RTSP/1.0 IP Camera ready", devices[0].Info)
	assert.Equal(t, "2025-06-01T12:00:00Z", devices[0].Timestamp)

	assert.Equal(t, models.DeviceTypeIOT, devices[1].DeviceType)
	assert.Equal(t, "Unknown", devices[1].Vendor)
	assert.Len(t, devices[1].Info, 100, "banner is truncated to 100 characters")
}

func TestSearchGeoDefaultsRadius(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "geo:51.5,-0.09,1", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches": []}`))
	}, nil)

	devices := p.SearchGeo(context.Background(), 51.5, -0.09, 0)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
}

func TestSearchGeoUnconfigured(t *testing.T) {
	called := false

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	t.Cleanup(server.Close)

	p := New(Config{Endpoint: server.URL}, nil, logger.NewTestLogger())

	devices := p.SearchGeo(context.Background(), 51.5, -0.09, 1)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
	assert.False(t, called)
}

func TestSearchGeoFailOpen(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, nil)

	devices := p.SearchGeo(context.Background(), 51.5, -0.09, 1)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
}

func TestSearchGeoMemoizes(t *testing.T) {
	calls := 0

	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matches": [{"data": "hello", "ip_str": "203.0.113.10", "org": "ExampleNet", "location": {"latitude": 51.5, "longitude": -0.09}}]}`))
	}, cache.NewMemory())

	ctx := context.Background()

	first := p.SearchGeo(ctx, 51.5, -0.09, 1)
	second := p.SearchGeo(ctx, 51.5, -0.09, 1)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 100))
	assert.Equal(t, strings.Repeat("a", 100), truncate(strings.Repeat("a", 250), 100))
	assert.Equal(t, "héllo", truncate("héllo", 5))
}
