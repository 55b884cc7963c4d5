package api

// SupportResponse is the verdict for one capability query.
type SupportResponse struct {
	ID         string   `json:"id"`
	Pattern    string   `json:"pattern"`
	Supported  bool     `json:"supported"`
	Violations []string `json:"violations,omitempty"`
}

// HardwareResponse reports whether a real target device is present.
type HardwareResponse struct {
	Available bool `json:"available"`
}

// ErrorBody is the error envelope for malformed requests.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
