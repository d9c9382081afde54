package shodan

// hostSearchResponse is the Shodan host-search payload.
type hostSearchResponse struct {
	Matches []match `json:"matches"`
}

type match struct {
	Data     string   `json:"data"`
	IPStr    string   `json:"ip_str"`
	Org      string   `json:"org"`
	Location location `json:"location"`
}

// location coordinates are pointers so hosts without geolocation can be
// told apart from hosts at the origin.
type location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
