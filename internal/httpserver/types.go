package httpserver

import "fpl-cache/internal/perf"

// InvalidateRequest asks for event-based cache invalidation.
type InvalidateRequest struct {
	Event string `json:"event"`
}

// InvalidateResponse reports how many remote keys an event removed.
type InvalidateResponse struct {
	Success     bool   `json:"success"`
	Event       string `json:"event"`
	Invalidated int    `json:"invalidated"`
	Error       string `json:"error,omitempty"`
}

// StatsResponse combines sampler aggregates with remote server statistics.
type StatsResponse struct {
	Performance perf.Stats        `json:"performance"`
	Remote      map[string]string `json:"remote,omitempty"`
	RemoteError string            `json:"remote_error,omitempty"`
}
