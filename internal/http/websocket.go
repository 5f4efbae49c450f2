package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"suviet_server/config"
	"suviet_server/internal/models"
	"suviet_server/pkg/colors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Public read-only feed; any origin may listen
		return true
	},
}

const writeWait = 5 * time.Second

// WebSocketHub fans setting updates out to connected browsers
type WebSocketHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	mutex      sync.RWMutex
}

// WebSocketMessage represents a message sent through WebSocket
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// SettingUpdate is the payload of a setting_update message
type SettingUpdate struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NewWebSocketHub creates a new WebSocket hub
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is cancelled, then closes every client
func (h *WebSocketHub) Run(ctx context.Context) {
	colors.PrintServer("🔗", "WebSocket hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			colors.PrintInfo("WebSocket client connected. Total clients: %d", total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			total := len(h.clients)
			h.mutex.Unlock()
			colors.PrintInfo("WebSocket client disconnected. Total clients: %d", total)

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				client.SetWriteDeadline(time.Now().Add(writeWait))
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					colors.PrintWarning("Dropping WebSocket client: %v", err)
					client.Close()
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// BroadcastSettingUpdate queues a setting_update message for every client.
// When the queue is full the update is dropped; clients refetch on reconnect.
func (h *WebSocketHub) BroadcastSettingUpdate(setting models.Setting) {
	message := WebSocketMessage{
		Type:      "setting_update",
		Timestamp: config.FormatTimeInTimezone(setting.UpdatedAt, time.RFC3339),
		Data:      SettingUpdate{Key: setting.Key, Value: setting.Value},
	}

	data, err := json.Marshal(message)
	if err != nil {
		colors.PrintError("Error marshaling setting update: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		colors.PrintWarning("WebSocket broadcast queue full, dropping update for %s", setting.Key)
	}
}

// HandleWebSocket upgrades the request and keeps the connection until the
// client goes away. Incoming messages are ignored.
func (h *WebSocketHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		colors.PrintError("WebSocket upgrade failed: %v", err)
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.done:
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
