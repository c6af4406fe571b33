// file: internal/realtime/events.go
// version: 2.0.0
// guid: 9e8d7f6a-5c4b-3a21-0f9e-8d7c6b5a4392

package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventType defines the type of real-time event
type EventType string

const (
	EventSessionState    EventType = "session.state"
	EventSessionClosed   EventType = "session.closed"
	EventCatalogReloaded EventType = "catalog.reloaded"
	EventSystemStatus    EventType = "system.status"
)

// Event represents a real-time event to send to clients. ID is the session
// the event concerns; it is empty for system-wide events.
type Event struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Client represents a connected SSE client
type Client struct {
	ID       string
	Channel  chan *Event
	Sessions map[string]bool // Sessions this client is interested in
	mu       sync.RWMutex
}

// NewClient creates a new SSE client
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Channel:  make(chan *Event, 100),
		Sessions: make(map[string]bool),
	}
}

// Subscribe limits the client to events of the given session (plus system events)
func (c *Client) Subscribe(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sessions[sessionID] = true
}

// Unsubscribe drops a session filter
func (c *Client) Unsubscribe(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.Sessions, sessionID)
}

// IsSubscribed checks if client is subscribed to a session
func (c *Client) IsSubscribed(sessionID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Sessions[sessionID]
}

func (c *Client) wants(event *Event) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return event.ID == "" || len(c.Sessions) == 0 || c.Sessions[event.ID]
}

// EventHub manages SSE connections and event distribution
type EventHub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     *zap.Logger
	now     func() time.Time
}

// NewEventHub creates a new event hub. A nil logger discards hub logs.
func NewEventHub(log *zap.Logger) *EventHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventHub{
		clients: make(map[string]*Client),
		log:     log.Named("events"),
		now:     time.Now,
	}
}

// RegisterClient registers a new client
func (h *EventHub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.log.Debug("client registered", zap.String("client", client.ID), zap.Int("clients", len(h.clients)))
}

// UnregisterClient removes a client
func (h *EventHub) UnregisterClient(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, exists := h.clients[clientID]; exists {
		close(client.Channel)
		delete(h.clients, clientID)
		h.log.Debug("client unregistered", zap.String("client", clientID), zap.Int("clients", len(h.clients)))
	}
}

// Broadcast sends an event to every interested client. Clients whose buffer
// is full miss the event.
func (h *EventHub) Broadcast(event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.wants(event) {
			continue
		}
		select {
		case client.Channel <- event:
		default:
			h.log.Warn("client channel full, dropping event",
				zap.String("client", client.ID), zap.String("type", string(event.Type)))
		}
	}
}

// Publish broadcasts an event of type t about session id.
func (h *EventHub) Publish(t EventType, id string, data any) {
	if h == nil {
		return
	}
	h.Broadcast(&Event{Type: t, ID: id, Timestamp: h.now(), Data: data})
}

// SendSystemStatus sends a system status event
func (h *EventHub) SendSystemStatus(data map[string]any) {
	h.Publish(EventSystemStatus, "", data)
}

// GetClientCount returns the number of connected clients
func (h *EventHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func writeEvent(c *gin.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}

// HandleSSE handles Server-Sent Events connection. ?session=<id> limits the
// stream to that session.
func (h *EventHub) HandleSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache, no-transform")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("X-Accel-Buffering", "no")

	clientID := fmt.Sprintf("client-%d", time.Now().UnixNano())
	client := NewClient(clientID)
	if sessionID := c.Query("session"); sessionID != "" {
		client.Subscribe(sessionID)
	}

	h.RegisterClient(client)
	defer h.UnregisterClient(clientID)

	_ = writeEvent(c, &Event{
		Type:      "connection.established",
		Timestamp: h.now(),
		Data:      map[string]any{"client_id": clientID},
	})

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-client.Channel:
			if !ok {
				return
			}
			if err := writeEvent(c, event); err != nil {
				h.log.Debug("write to client failed", zap.String("client", clientID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = writeEvent(c, map[string]any{
				"type":      "heartbeat",
				"timestamp": h.now(),
			})
		}
	}
}

// Global event hub instance
var GlobalHub *EventHub

// InitializeEventHub initializes the global event hub
func InitializeEventHub(log *zap.Logger) *EventHub {
	if GlobalHub != nil {
		return GlobalHub
	}
	GlobalHub = NewEventHub(log)
	return GlobalHub
}
