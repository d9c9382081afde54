package aggregator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardrive/netmapper/pkg/models"
)

func intPtr(v int) *int { return &v }

func TestStatsAggregatesAcrossProviders(t *testing.T) {
	wifi := device(models.DeviceTypeRouter, "Netgear")
	wifi.Signal = intPtr(-60)

	bt := device(models.DeviceTypeHeadphone, "Apple")
	bt.Signal = intPtr(-40)

	tower := device(models.DeviceTypeCellTower, "LTE Tower")

	networks := &fakeNetworks{
		networks:  []models.Device{wifi},
		bluetooth: []models.Device{bt},
	}
	towers := &fakeTowers{devices: []models.Device{tower}}
	hosts := &fakeHosts{devices: []models.Device{device(models.DeviceTypeIOT, "ExampleNet")}}

	stats, err := newTestService(networks, towers, hosts).Stats(context.Background(), 51.505, -0.09, 0.05)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalDevices, "hosts are not part of stats collection")
	assert.Equal(t, 0, hosts.calls)
	assert.Equal(t, 1, stats.DeviceTypes["router"])
	assert.Equal(t, 1, stats.DeviceTypes["headphone"])
	assert.Equal(t, 1, stats.DeviceTypes["cell_tower"])

	require.NotNil(t, stats.AverageSignal)
	assert.InDelta(t, -50.0, *stats.AverageSignal, 1e-9)

	assert.InDelta(t, 5.55, stats.SearchArea.RadiusKM, 1e-9)
	assert.InDelta(t, 51.505, stats.SearchArea.Center.Lat, 1e-9)
}

func TestStatsInvalidCoordinates(t *testing.T) {
	svc := newTestService(&fakeNetworks{}, &fakeTowers{}, &fakeHosts{})

	_, err := svc.Stats(context.Background(), -91, 0, 0.05)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestReduceAverageSignalOmittedWithoutSamples(t *testing.T) {
	devices := []models.Device{
		device(models.DeviceTypeRouter, "Netgear"),
		device(models.DeviceTypeCellTower, "LTE Tower"),
	}

	stats := reduce(devices, 51.505, -0.09, 0.01)

	assert.Nil(t, stats.AverageSignal)
	assert.Equal(t, 2, stats.TotalDevices)
}

func TestReduceCountsZeroSignal(t *testing.T) {
	d := device(models.DeviceTypeRouter, "Netgear")
	d.Signal = intPtr(0)

	stats := reduce([]models.Device{d}, 51.505, -0.09, 0.01)

	require.NotNil(t, stats.AverageSignal)
	assert.InDelta(t, 0.0, *stats.AverageSignal, 1e-9)
}

func TestReduceSkipsEmptyVendors(t *testing.T) {
	devices := []models.Device{
		device(models.DeviceTypeRouter, "Netgear"),
		device(models.DeviceTypeBluetooth, ""),
	}

	stats := reduce(devices, 51.505, -0.09, 0.01)

	require.Len(t, stats.TopVendors, 1)
	assert.Equal(t, "Netgear", stats.TopVendors[0].Vendor)
}

func TestTopVendorsOrderAndTruncation(t *testing.T) {
	vendors := make(map[string]int)
	for i := 0; i < 12; i++ {
		vendors[fmt.Sprintf("vendor-%02d", i)] = i + 1
	}

	top := topVendors(vendors)

	require.Len(t, top, 10)
	assert.Equal(t, "vendor-11", top[0].Vendor)
	assert.Equal(t, 12, top[0].Count)

	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
	}
}

func TestTopVendorsTieBreakByName(t *testing.T) {
	top := topVendors(map[string]int{"Zeta": 3, "Alpha": 3, "Mid": 5})

	require.Len(t, top, 3)
	assert.Equal(t, "Mid", top[0].Vendor)
	assert.Equal(t, "Alpha", top[1].Vendor)
	assert.Equal(t, "Zeta", top[2].Vendor)
}
