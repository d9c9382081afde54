package opencellid

// locateRequest is the unwiredlabs process.php request body.
type locateRequest struct {
	Token   string  `json:"token"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address int     `json:"address"`
}

// locateResponse is the cell-location payload. Status is "ok" on success;
// anything else is treated as an empty result.
type locateResponse struct {
	Status string `json:"status"`
	Cells  []cell `json:"cells"`
}

type cell struct {
	Lat      float64     `json:"lat"`
	Lon      float64     `json:"lon"`
	CellID   int64       `json:"cellid"`
	Radio    string      `json:"radio"`
	Signal   *int        `json:"signal"`
	Accuracy *int        `json:"accuracy"`
	Updated  interface{} `json:"updated"`
}
