package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"coachingku_backend/internals/logger"
)

// Room names. A student joins its own room plus its class rooms; admins join
// their user room. The broadcast room is implicit — every client is in it.
func StudentRoom(id string) string { return "student:" + id }
func UserRoom(id string) string    { return "user:" + id }

func ClassRoom(class, section string) string {
	if section != "" {
		return "class:" + class + ":" + section
	}
	return "class:" + class
}

type client struct {
	send  chan []byte
	rooms map[string]bool
}

// Hub tracks connected websocket clients and their room membership. All
// methods are safe for concurrent use.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

var Default = NewHub()

func (h *Hub) register(buffer int) *client {
	cl := &client{
		send:  make(chan []byte, buffer),
		rooms: make(map[string]bool),
	}
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()
	return cl
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
}

func (h *Hub) join(cl *client, rooms ...string) {
	h.mu.Lock()
	for _, r := range rooms {
		if r != "" {
			cl.rooms[r] = true
		}
	}
	h.mu.Unlock()
}

// ClientCount reports connected clients (health endpoint).
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomCount reports how many clients are in a room.
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for cl := range h.clients {
		if cl.rooms[room] {
			n++
		}
	}
	return n
}

type frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func encode(event string, payload map[string]interface{}) []byte {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	if _, ok := payload["timestamp"]; !ok {
		payload["timestamp"] = time.Now().Format(time.RFC3339)
	}
	b, err := json.Marshal(frame{Event: event, Data: payload})
	if err != nil {
		logger.Log.WithError(err).Warn("realtime encode failed")
		return nil
	}
	return b
}

// EmitToRoom sends an event to every client in the given room. Slow clients
// with a full buffer are skipped rather than blocking the caller.
func (h *Hub) EmitToRoom(room, event string, payload map[string]interface{}) {
	msg := encode(event, payload)
	if msg == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		if !cl.rooms[room] {
			continue
		}
		select {
		case cl.send <- msg:
		default:
		}
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event string, payload map[string]interface{}) {
	msg := encode(event, payload)
	if msg == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		select {
		case cl.send <- msg:
		default:
		}
	}
}
