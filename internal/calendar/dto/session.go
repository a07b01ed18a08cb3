package dto

// SessionResponse reports the caller's anonymous identity.
type SessionResponse struct {
	UserID string `json:"userId"`
	Issued bool   `json:"issued"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}
