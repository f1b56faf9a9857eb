package dto

// KundliRequest is the POST /api/kundli body. Unknown fields are ignored.
type KundliRequest struct {
	Dob      string `json:"dob"`
	Tob      string `json:"tob"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Ayanamsa string `json:"ayanamsa,omitempty"`
}

// KundliResponse carries three parallel arrays, Lagna first.
type KundliResponse struct {
	Graha     []string  `json:"graha"`
	Longitude []float64 `json:"longitude"`
	Formatted []string  `json:"formatted"`
}

// ErrorResponse is the only shape returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
