package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"nutriplan/models"
)

// NeedsPublisher is notified whenever a profile's derived values are recomputed.
type NeedsPublisher interface {
	PublishNeeds(userID string, needs models.CalculatedNeeds)
}

type WSClient struct {
	UserID string
	Conn   *websocket.Conn

	writeMu sync.Mutex
	closed  bool
}

func (c *WSClient) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// Ping sends a websocket ping through the client's write lock.
func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

// Unregister is safe to call more than once for the same client.
func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if !c.closed {
		c.closed = true
		_ = c.Conn.Close()
	}
}

func (h *RealtimeHub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *RealtimeHub) Broadcast(userID string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("realtime: cannot encode payload for user %s: %v", userID, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.write(websocket.TextMessage, msg)
	}
}

func (h *RealtimeHub) PublishNeeds(userID string, needs models.CalculatedNeeds) {
	h.Broadcast(userID, map[string]any{
		"kind":  "needs.recalculated",
		"needs": needs,
	})
}
