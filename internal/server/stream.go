package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/ayusman/mudra/internal/gesture"
)

// EventStreamHandler serves recognized gesture events over Server-Sent
// Events. The pipeline publishes events through Publish; each connected
// client receives every event from the moment it subscribed.
type EventStreamHandler struct {
	clients map[chan []byte]bool
	mu      sync.RWMutex
}

// NewEventStreamHandler creates a new EventStreamHandler.
func NewEventStreamHandler() *EventStreamHandler {
	return &EventStreamHandler{
		clients: make(map[chan []byte]bool),
	}
}

// Publish broadcasts a gesture event to all connected clients. Slow
// clients drop events rather than blocking the pipeline.
func (h *EventStreamHandler) Publish(event gesture.Event) {
	msg, err := json.Marshal(map[string]any{
		"rule_id":   event.RuleID,
		"rule_name": event.RuleName,
		"phase":     string(event.Phase),
		"chirality": string(event.Chirality),
		"distance":  event.Distance,
		"timestamp": event.Timestamp.UnixMilli(),
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// ServeHTTP streams events to a client until it disconnects.
func (h *EventStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan []byte, 16)
	h.mu.Lock()
	h.clients[ch] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
	}()

	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
