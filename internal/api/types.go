// Package api provides the HTTP surface of the timer service.
package api

import "github.com/breaktimer/timerd/internal/timer"

// TimerResponse is a timer in API responses.
type TimerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMS  int64  `json:"duration_ms"`
	RemainingMS int64  `json:"remaining_ms"`
	IsRunning   bool   `json:"is_running"`
}

// CreateTimerRequest is the request body for POST /timers.
type CreateTimerRequest struct {
	Name       string `json:"name"`
	DurationMS int64  `json:"duration_ms"`
}

// ActionRequest is the request body for POST /timers/actions. An omitted or
// empty ids list targets every timer.
type ActionRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids,omitempty"`
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func toTimerResponse(t *timer.Timer) TimerResponse {
	return TimerResponse{
		ID:          t.ID,
		Name:        t.Name,
		DurationMS:  t.DurationMS,
		RemainingMS: t.RemainingMS,
		IsRunning:   t.IsRunning,
	}
}

func toTimerResponses(timers []*timer.Timer) []TimerResponse {
	out := make([]TimerResponse, 0, len(timers))
	for _, t := range timers {
		out = append(out, toTimerResponse(t))
	}
	return out
}
