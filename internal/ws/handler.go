package ws

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/billiards/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is checked by middleware.WebSocketCORSCheck
	},
}

// Client represents a connected WebSocket client watching one table.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	table      *session.Session
	tableID    string
	canControl bool
	format     string
	send       chan []byte
}

// Hub fans frames and table events out to the clients of each table.
type Hub struct {
	rooms      map[string]map[*Client]bool // tableID -> clients
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Println("[WS] Hub stopping")
			return

		case client := <-h.register:
			h.mu.Lock()
			room, exists := h.rooms[client.tableID]
			if !exists {
				room = make(map[*Client]bool)
				h.rooms[client.tableID] = room
			}
			room[client] = true
			size := len(room)
			h.mu.Unlock()

			log.Printf("[WS] Client joined table %s (control=%v, format=%s, room_size=%d)",
				client.tableID, client.canControl, client.format, size)
			client.sendMessage(newFrameMessage(client.table.Snapshot()))

		case client := <-h.unregister:
			h.mu.Lock()
			if room, exists := h.rooms[client.tableID]; exists && room[client] {
				delete(room, client)
				close(client.send)
				if len(room) == 0 {
					delete(h.rooms, client.tableID)
				}
				log.Printf("[WS] Client left table %s", client.tableID)
			}
			h.mu.Unlock()
		}
	}
}

// RoomSize returns the number of clients watching a table.
func (h *Hub) RoomSize(tableID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[tableID])
}

// PublishFrame implements session.FrameSink.
func (h *Hub) PublishFrame(f session.Frame) {
	h.BroadcastToTable(f.SessionID, newFrameMessage(f))
}

// RecordShot implements session.ShotRecorder for single-instance setups
// where shot summaries are not relayed through Redis.
func (h *Hub) RecordShot(ctx context.Context, shot session.ShotSummary) error {
	h.BroadcastToTable(shot.SessionID, newShotMessage(shot))
	return nil
}

// BroadcastToTable sends a message to every client of a table, encoding it
// at most once per wire format.
func (h *Hub) BroadcastToTable(tableID string, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, exists := h.rooms[tableID]
	if !exists {
		return
	}

	encoded := make(map[string][]byte, 2)
	for client := range room {
		data, ok := encoded[client.format]
		if !ok {
			var err error
			data, err = encode(client.format, message)
			if err != nil {
				log.Printf("[WS] Error encoding %s message for table %s: %v", client.format, tableID, err)
				return
			}
			encoded[client.format] = data
		}

		select {
		case client.send <- data:
		default:
			// Frames are superseded by the next one; dropping is fine.
			log.Printf("[WS] Client send buffer full on table %s, dropping message", tableID)
		}
	}
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(messageType(c.format), message); err != nil {
				log.Printf("[WS] Write error on table %s: %v", c.tableID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error on table %s: %v", c.tableID, err)
				return
			}
		}
	}
}

// sendMessage encodes and queues a message for this client only.
func (c *Client) sendMessage(message interface{}) {
	data, err := encode(c.format, message)
	if err != nil {
		log.Printf("[WS] Error encoding message for table %s: %v", c.tableID, err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] Client send buffer full on table %s, dropping message", c.tableID)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendMessage(errorMessage{Type: "error", Message: message})
}
