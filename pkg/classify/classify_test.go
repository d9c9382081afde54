package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wardrive/netmapper/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback models.DeviceType
		want     models.DeviceType
	}{
		{name: "car by brand", input: "Tesla Model 3", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeCar},
		{name: "tv by brand", input: "LG BRAVIA", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeTV},
		{name: "headphone", input: "AirPods Pro", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeHeadphone},
		{name: "camera", input: "Ring Camera", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeCamera},
		{name: "dashcam", input: "70MAI Dash Cam", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeDashcam},
		{name: "iot wearable", input: "Fitbit Versa", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeIOT},
		{name: "lowercase", input: "tesla", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeCar},
		{name: "uppercase", input: "TESLA", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeCar},
		{name: "mixed case", input: "TeSLa", fallback: models.DeviceTypeUnknown, want: models.DeviceTypeCar},
		{name: "no match keeps fallback", input: "xfinitywifi", fallback: models.DeviceTypeRouter, want: models.DeviceTypeRouter},
		{name: "empty name keeps fallback", input: "", fallback: models.DeviceTypeBluetooth, want: models.DeviceTypeBluetooth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input, tt.fallback))
		})
	}
}

// A name matching several categories must always resolve to the first one
// in declaration order.
func TestClassifyFirstMatchWins(t *testing.T) {
	// "SONY" appears in both the tv and headphone pattern sets.
	assert.Equal(t, models.DeviceTypeTV, Classify("SONY WH-1000XM5", models.DeviceTypeUnknown))

	// "NEST" appears in both the camera and iot pattern sets.
	assert.Equal(t, models.DeviceTypeCamera, Classify("Nest Doorbell", models.DeviceTypeUnknown))
}

func TestIconIsTotal(t *testing.T) {
	all := []models.DeviceType{
		models.DeviceTypeRouter,
		models.DeviceTypeCar,
		models.DeviceTypeTV,
		models.DeviceTypeHeadphone,
		models.DeviceTypeDashcam,
		models.DeviceTypeCamera,
		models.DeviceTypeIOT,
		models.DeviceTypeCellTower,
		models.DeviceTypeBluetooth,
		models.DeviceTypeUnknown,
	}

	for _, dt := range all {
		assert.NotEmpty(t, Icon(dt), "device type %q must have a glyph", dt)
	}

	assert.Equal(t, "❓", Icon(models.DeviceType("toothbrush")))
}
