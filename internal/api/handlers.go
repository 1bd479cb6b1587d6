package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/breaktimer/timerd/internal/timer"
)

// TimersAPI handles the timer endpoints.
type TimersAPI struct {
	service *timer.Service
	logger  *log.Logger
}

// NewTimersAPI creates a new timers API handler.
func NewTimersAPI(service *timer.Service, logger *log.Logger) *TimersAPI {
	return &TimersAPI{
		service: service,
		logger:  logger,
	}
}

// HandleTimers handles GET and POST /timers.
func (a *TimersAPI) HandleTimers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.handleList(w, r)
	case http.MethodPost:
		a.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleList handles GET /timers.
func (a *TimersAPI) handleList(w http.ResponseWriter, _ *http.Request) {
	timers, err := a.service.List()
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimerResponses(timers))
}

// handleCreate handles POST /timers.
func (a *TimersAPI) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTimerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	t, err := a.service.Create(req.Name, req.DurationMS)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.logger.WithFields(log.Fields{
		"id":          t.ID,
		"name":        t.Name,
		"duration_ms": t.DurationMS,
	}).Info("timer created")

	writeJSON(w, http.StatusCreated, toTimerResponse(t))
}

// HandleActions handles POST /timers/actions.
func (a *TimersAPI) HandleActions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	action, err := timer.ParseAction(req.Action)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	timers, err := a.service.Apply(action, req.IDs)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.logger.WithFields(log.Fields{
		"action":  string(action),
		"targets": len(req.IDs),
	}).Debug("action applied")

	writeJSON(w, http.StatusOK, toTimerResponses(timers))
}

// HandleTimerByID handles DELETE /timers/{id}.
func (a *TimersAPI) HandleTimerByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/timers/")
	if id == "" || strings.Contains(id, "/") {
		writeJSONError(w, http.StatusNotFound, "Timer not found", r.URL.Path)
		return
	}

	if err := a.service.Delete(id); err != nil {
		a.writeServiceError(w, err)
		return
	}

	a.logger.WithField("id", id).Info("timer deleted")

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps domain errors onto HTTP status codes. Anything
// outside the client-error taxonomy is a persistence failure and reported as
// a server error.
func (a *TimersAPI) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timer.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "One or more timers not found", err.Error())
	case errors.Is(err, timer.ErrInvalidDuration), errors.Is(err, timer.ErrUnknownAction):
		writeJSONError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		a.logger.WithError(err).Error("store failure")
		writeJSONError(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a standard JSON error response.
func writeJSONError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
