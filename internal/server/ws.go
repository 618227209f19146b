package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/tracker"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// DistancesHandler broadcasts live fingertip distance measurements via
// WebSocket. Each message carries, per tracked hand, the thumb-to-digit
// distance for every digit with a tracked fingertip.
type DistancesHandler struct {
	provider tracker.Provider
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
}

// NewDistancesHandler creates a new DistancesHandler polling the given
// provider.
func NewDistancesHandler(p tracker.Provider) *DistancesHandler {
	h := &DistancesHandler{
		provider: p,
		clients:  make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *DistancesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

type handDistances struct {
	Chirality string             `json:"chirality"`
	Pinches   map[string]float64 `json:"pinches"`
}

// broadcast polls the provider and sends distance snapshots to all
// connected clients. Polling pauses while no clients are connected.
func (h *DistancesHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 Hz
	defer ticker.Stop()

	pairDigits := []hand.Digit{hand.DigitIndex, hand.DigitMiddle, hand.DigitRing, hand.DigitLittle}

	for range ticker.C {
		h.mu.RLock()
		idle := len(h.clients) == 0
		h.mu.RUnlock()
		if idle {
			continue
		}

		frame, err := h.provider.NextFrame()
		if err != nil {
			continue
		}

		hands := make([]handDistances, 0, len(frame.Anchors))
		for i := range frame.Anchors {
			anchor := &frame.Anchors[i]
			pinches := make(map[string]float64)
			for _, digit := range pairDigits {
				if d, ok := hand.DistanceBetweenDigits(anchor, hand.DigitThumb, nil, digit); ok {
					pinches[digit.String()] = d
				}
			}
			if len(pinches) == 0 {
				continue
			}
			hands = append(hands, handDistances{
				Chirality: string(anchor.Chirality),
				Pinches:   pinches,
			})
		}

		msg, _ := json.Marshal(map[string]any{
			"hands":     hands,
			"timestamp": time.Now().UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
