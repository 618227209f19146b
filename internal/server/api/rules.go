// Package api provides the HTTP API handlers for the Mudra daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/store"
)

// Default hysteresis thresholds for new rules, meters.
const (
	DefaultEnterDistance = 0.02
	DefaultExitDistance  = 0.04
)

// RuleHandler handles HTTP requests for gesture rule resources.
type RuleHandler struct {
	store *store.Store

	// OnChange, if set, is invoked after every successful mutation so the
	// daemon can reload its matcher.
	OnChange func()
}

// NewRuleHandler creates a new RuleHandler with the given store.
func NewRuleHandler(s *store.Store) *RuleHandler {
	return &RuleHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// the appropriate method.
func (h *RuleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/rules or /api/rules/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/rules")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createRuleRequest struct {
	Name          string  `json:"name"`
	FirstDigit    string  `json:"first_digit"`
	SecondDigit   string  `json:"second_digit"`
	TwoHanded     bool    `json:"two_handed"`
	EnterDistance float64 `json:"enter_distance"`
	ExitDistance  float64 `json:"exit_distance"`
}

type updateRuleRequest struct {
	Name          string   `json:"name"`
	FirstDigit    string   `json:"first_digit"`
	SecondDigit   string   `json:"second_digit"`
	TwoHanded     *bool    `json:"two_handed"`
	EnterDistance *float64 `json:"enter_distance"`
	ExitDistance  *float64 `json:"exit_distance"`
}

type ruleResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	FirstDigit    string  `json:"first_digit"`
	SecondDigit   string  `json:"second_digit"`
	TwoHanded     bool    `json:"two_handed"`
	EnterDistance float64 `json:"enter_distance"`
	ExitDistance  float64 `json:"exit_distance"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type listRulesResponse struct {
	Rules []ruleResponse `json:"rules"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toRuleResponse converts a store.Rule to a ruleResponse.
func toRuleResponse(r *store.Rule) ruleResponse {
	return ruleResponse{
		ID:            r.ID,
		Name:          r.Name,
		FirstDigit:    r.FirstDigit,
		SecondDigit:   r.SecondDigit,
		TwoHanded:     r.TwoHanded,
		EnterDistance: r.EnterDistance,
		ExitDistance:  r.ExitDistance,
		CreatedAt:     r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func (h *RuleHandler) changed() {
	if h.OnChange != nil {
		h.OnChange()
	}
}

// list handles GET /api/rules and returns all rules.
func (h *RuleHandler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.store.Rules().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rules")
		return
	}

	response := listRulesResponse{
		Rules: make([]ruleResponse, 0, len(rules)),
	}
	for _, rule := range rules {
		response.Rules = append(response.Rules, toRuleResponse(rule))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/rules/{id} and returns a single rule.
func (h *RuleHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	rule, err := h.store.Rules().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Rule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get rule")
		return
	}

	writeJSON(w, http.StatusOK, toRuleResponse(rule))
}

// create handles POST /api/rules and creates a new rule.
func (h *RuleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if _, err := hand.ParseDigit(req.FirstDigit); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid first_digit")
		return
	}
	if _, err := hand.ParseDigit(req.SecondDigit); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid second_digit")
		return
	}

	enter := req.EnterDistance
	if enter <= 0 {
		enter = DefaultEnterDistance
	}
	exit := req.ExitDistance
	if exit <= 0 {
		exit = DefaultExitDistance
	}
	if exit < enter {
		writeError(w, http.StatusBadRequest, "exit_distance must not be below enter_distance")
		return
	}

	if _, err := h.store.Rules().GetByName(req.Name); err == nil {
		writeError(w, http.StatusConflict, "A rule with this name already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Failed to create rule")
		return
	}

	rule := &store.Rule{
		ID:            uuid.New().String(),
		Name:          req.Name,
		FirstDigit:    req.FirstDigit,
		SecondDigit:   req.SecondDigit,
		TwoHanded:     req.TwoHanded,
		EnterDistance: enter,
		ExitDistance:  exit,
	}

	if err := h.store.Rules().Create(rule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create rule")
		return
	}

	h.changed()
	writeJSON(w, http.StatusCreated, toRuleResponse(rule))
}

// update handles PUT /api/rules/{id} and updates an existing rule.
func (h *RuleHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	rule, err := h.store.Rules().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Rule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get rule")
		return
	}

	var req updateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" {
		rule.Name = req.Name
	}
	if req.FirstDigit != "" {
		if _, err := hand.ParseDigit(req.FirstDigit); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid first_digit")
			return
		}
		rule.FirstDigit = req.FirstDigit
	}
	if req.SecondDigit != "" {
		if _, err := hand.ParseDigit(req.SecondDigit); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid second_digit")
			return
		}
		rule.SecondDigit = req.SecondDigit
	}
	if req.TwoHanded != nil {
		rule.TwoHanded = *req.TwoHanded
	}
	if req.EnterDistance != nil {
		rule.EnterDistance = *req.EnterDistance
	}
	if req.ExitDistance != nil {
		rule.ExitDistance = *req.ExitDistance
	}
	if rule.EnterDistance <= 0 || rule.ExitDistance < rule.EnterDistance {
		writeError(w, http.StatusBadRequest, "Invalid threshold distances")
		return
	}

	if err := h.store.Rules().Update(rule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update rule")
		return
	}

	h.changed()
	writeJSON(w, http.StatusOK, toRuleResponse(rule))
}

// delete handles DELETE /api/rules/{id} and removes a rule.
func (h *RuleHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Rules().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Rule not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete rule")
		return
	}

	h.changed()
	w.WriteHeader(http.StatusNoContent)
}
