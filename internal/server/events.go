package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/tracking"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// transitionMessage is the wire form of a gesture transition.
type transitionMessage struct {
	Gesture   string `json:"gesture"`
	Side      string `json:"side"`
	Active    bool   `json:"active"`
	Timestamp int64  `json:"timestamp"`
}

// EventsHandler broadcasts gesture transitions to WebSocket clients.
type EventsHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates an EventsHandler subscribed to the tracker's
// transitions.
func NewEventsHandler(tracker *tracking.Coordinator) *EventsHandler {
	h := &EventsHandler{
		clients: make(map[*websocket.Conn]bool),
	}
	tracker.OnTransition(h.publish)
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

// publish fans one transition out to every connected client. It runs on the
// coordinator's dispatch goroutine.
func (h *EventsHandler) publish(t tracking.Transition) {
	msg, _ := json.Marshal(transitionMessage{
		Gesture:   t.Gesture,
		Side:      string(t.Side),
		Active:    t.Active,
		Timestamp: t.At.UnixMilli(),
	})

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	var dead []*websocket.Conn
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			dead = append(dead, conn)
		}
	}
	if len(dead) == 0 {
		return
	}

	h.mu.Lock()
	for _, conn := range dead {
		if h.clients[conn] {
			delete(h.clients, conn)
			conn.Close()
		}
	}
	h.mu.Unlock()
}
