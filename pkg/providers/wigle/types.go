package wigle

// searchResponse is the WiGLE network/bluetooth search payload; only the
// fields the canonical model needs are decoded.
type searchResponse struct {
	Success bool     `json:"success"`
	Results []record `json:"results"`
}

type record struct {
	TriLat     float64 `json:"trilat"`
	TriLon     float64 `json:"trilong"`
	SSID       string  `json:"ssid"`
	Name       string  `json:"name"`
	NetID      string  `json:"netid"`
	Type       string  `json:"type"`
	Vendor     string  `json:"vendor"`
	Level      *int    `json:"level"`
	LastUpdate string  `json:"lastupdt"`
}
