// Package handlers implements the HTTP API for collectopedia. Operations
// are registered on a huma.API; the liveness and readiness probes are plain
// echo handlers.
package handlers

// StatusResponse is the probe response body.
type StatusResponse struct {
	Status string            `json:"status"           example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}
