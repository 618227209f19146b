// Package server provides the HTTP server for the Mudra daemon.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tracker"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Provider  tracker.Provider

	// OnRulesChanged, if set, is invoked after every rule mutation through
	// the API.
	OnRulesChanged func()
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventStreamHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		events: NewEventStreamHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// Events returns the gesture event stream handler, so the pipeline can
// publish into it.
func (s *Server) Events() *EventStreamHandler {
	return s.events
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.Handle("/api/events", s.events)

	if s.config.Store != nil {
		ruleHandler := api.NewRuleHandler(s.config.Store)
		ruleHandler.OnChange = s.config.OnRulesChanged
		eventsHandler := api.NewEventsHandler(s.config.Store)

		// Route /api/rules/{id}/events to the events handler, everything
		// else under /api/rules to the rule handler
		ruleRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/events") {
				eventsHandler.ServeHTTP(w, r)
				return
			}
			ruleHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/rules", ruleRouter)
		s.mux.Handle("/api/rules/", ruleRouter)

		actionHandler := api.NewActionHandler(s.config.Store)
		s.mux.Handle("/api/actions", actionHandler)
		s.mux.Handle("/api/actions/", actionHandler)
	}

	// Live distance measurements need a tracking provider
	if s.config.Provider != nil {
		s.mux.Handle("/api/distances", NewDistancesHandler(s.config.Provider))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
