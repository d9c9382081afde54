package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceSerializationOmitsAbsentOptionals(t *testing.T) {
	d := Device{
		Lat:        51.505,
		Lon:        -0.09,
		DeviceType: DeviceTypeRouter,
		Timestamp:  "2025-06-01T12:00:00Z",
	}

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Len(t, decoded, 4)

	for _, key := range []string{"ssid", "bssid", "cell_id", "ip", "vendor", "signal", "accuracy", "info"} {
		_, present := decoded[key]
		assert.False(t, present, "optional key %q must be omitted, not null", key)
	}
}

func TestDeviceSerializationKeepsZeroSignal(t *testing.T) {
	signal := 0
	d := Device{
		Lat:        51.505,
		Lon:        -0.09,
		DeviceType: DeviceTypeBluetooth,
		Timestamp:  "2025-06-01T12:00:00Z",
		Signal:     &signal,
	}

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	got, present := decoded["signal"]
	require.True(t, present)
	assert.Equal(t, float64(0), got)
}

func TestStatisticsOmitsAverageSignalWhenNil(t *testing.T) {
	stats := Statistics{
		TotalDevices: 2,
		DeviceTypes:  map[string]int{"router": 2},
		TopVendors:   []VendorCount{{Vendor: "Cisco", Count: 2}},
	}

	raw, err := json.Marshal(stats)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	_, present := decoded["average_signal"]
	assert.False(t, present)
}

func TestDurationUnmarshal(t *testing.T) {
	var cfg struct {
		Timeout Duration `json:"timeout"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"timeout":"10s"}`), &cfg))
	assert.Equal(t, "10s", cfg.Timeout.Duration().String())

	require.NoError(t, json.Unmarshal([]byte(`{"timeout":1000000000}`), &cfg))
	assert.Equal(t, "1s", cfg.Timeout.Duration().String())

	assert.Error(t, json.Unmarshal([]byte(`{"timeout":"forever"}`), &cfg))
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.InDelta(t, DefaultMaxSearchRadius, cfg.MaxSearchRadius, 1e-9)
	assert.Equal(t, DefaultProviderTimeout, cfg.ProviderTimeout.Duration())
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout.Duration())
}
