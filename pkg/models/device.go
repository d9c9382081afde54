package models

// DeviceType is the closed set of categories a discovered device can be
// classified into.
type DeviceType string

const (
	DeviceTypeRouter    DeviceType = "router"
	DeviceTypeCar       DeviceType = "car"
	DeviceTypeTV        DeviceType = "tv"
	DeviceTypeHeadphone DeviceType = "headphone"
	DeviceTypeDashcam   DeviceType = "dashcam"
	DeviceTypeCamera    DeviceType = "camera"
	DeviceTypeIOT       DeviceType = "iot"
	DeviceTypeCellTower DeviceType = "cell_tower"
	DeviceTypeBluetooth DeviceType = "bluetooth"
	DeviceTypeUnknown   DeviceType = "unknown"
)

// Device is the canonical record every provider normalizes into. Optional
// fields carry omitempty so absent attributes never serialize; Signal and
// Accuracy are pointers so a reported zero survives the presence check.
type Device struct {
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	DeviceType DeviceType `json:"device_type"`
	Timestamp  string     `json:"timestamp"`
	SSID       string     `json:"ssid,omitempty"`
	BSSID      string     `json:"bssid,omitempty"`
	CellID     string     `json:"cell_id,omitempty"`
	IP         string     `json:"ip,omitempty"`
	Vendor     string     `json:"vendor,omitempty"`
	Signal     *int       `json:"signal,omitempty"`
	Accuracy   *int       `json:"accuracy,omitempty"`
	Info       string     `json:"info,omitempty"`
}
