package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// EventsHandler handles HTTP requests for a rule's event history.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/rules/{id}/events
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/rules/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "events" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	ruleID := parts[0]

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, ruleID)
	case http.MethodDelete:
		h.clear(w, r, ruleID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type listEventsResponse struct {
	Events []store.Event `json:"events"`
}

// list handles GET /api/rules/{id}/events. An optional ?limit=N query
// parameter caps the number of returned events, newest first.
func (h *EventsHandler) list(w http.ResponseWriter, r *http.Request, ruleID string) {
	if _, err := h.store.Rules().GetByID(ruleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Rule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify rule")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	events, err := h.store.Events().ListByRuleID(ruleID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}
	if events == nil {
		events = []store.Event{}
	}

	writeJSON(w, http.StatusOK, listEventsResponse{Events: events})
}

// clear handles DELETE /api/rules/{id}/events and removes a rule's history.
func (h *EventsHandler) clear(w http.ResponseWriter, r *http.Request, ruleID string) {
	if _, err := h.store.Rules().GetByID(ruleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Rule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify rule")
		return
	}

	if err := h.store.Events().DeleteByRuleID(ruleID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear events")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
