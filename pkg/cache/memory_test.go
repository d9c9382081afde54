package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "k", []byte("v"), time.Minute)

	got, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryMiss(t *testing.T) {
	_, ok := NewMemory().Get(context.Background(), "absent")
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	current := time.Unix(1000, 0)
	m.now = func() time.Time { return current }

	m.Set(ctx, "k", []byte("v"), 30*time.Second)

	_, ok := m.Get(ctx, "k")
	require.True(t, ok)

	current = current.Add(time.Minute)

	_, ok = m.Get(ctx, "k")
	assert.False(t, ok)

	// The expired entry must be gone, not just hidden.
	m.mu.RLock()
	_, present := m.entries["k"]
	m.mu.RUnlock()
	assert.False(t, present)
}

func TestMemoryIgnoresNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "k", []byte("v"), 0)

	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestKeyRoundsCoordinates(t *testing.T) {
	a := Key("wigle", "networks", 51.50512345, -0.09012345, 0.01)
	b := Key("wigle", "networks", 51.50512399, -0.09012399, 0.01)

	assert.Equal(t, a, b)
	assert.Equal(t, "wigle:networks:51.5051:-0.0901:0.0100", a)
}

func TestQueryKey(t *testing.T) {
	assert.Equal(t, "wigle:ssid:HomeNet", QueryKey("wigle", "ssid", "HomeNet"))
}
