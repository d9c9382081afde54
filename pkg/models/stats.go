package models

// VendorCount is one entry of the descending top-vendor list.
type VendorCount struct {
	Vendor string `json:"vendor"`
	Count  int    `json:"count"`
}

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchArea describes the effective region a statistics query covered.
type SearchArea struct {
	Center   GeoPoint `json:"center"`
	RadiusKM float64  `json:"radius_km"`
}

// Statistics is the reduction of a combined device list. AverageSignal is
// omitted entirely when no device in the set reported a signal.
type Statistics struct {
	TotalDevices  int            `json:"total_devices"`
	DeviceTypes   map[string]int `json:"device_types"`
	TopVendors    []VendorCount  `json:"top_vendors"`
	AverageSignal *float64       `json:"average_signal,omitempty"`
	SearchArea    SearchArea     `json:"search_area"`
}
