package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/billiards/internal/config"
	"github.com/playmatatu/billiards/internal/middleware"
	"github.com/playmatatu/billiards/internal/session"
)

const (
	readLimit = 4096
	pongWait  = 60 * time.Second
)

// HandleWebSocket upgrades a table connection. Clients presenting a valid
// table token in ?token= may control the cue; everyone else spectates.
func HandleWebSocket(hub *Hub, manager *session.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID := c.Param("id")

		table, err := manager.Get(tableID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
			return
		}

		canControl := false
		if token := c.Query("token"); token != "" {
			id, err := middleware.ParseTableToken(cfg.JWTSecret, token)
			if err != nil || id != tableID {
				c.JSON(http.StatusForbidden, gin.H{"error": "invalid table token"})
				return
			}
			canControl = true
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:        hub,
			conn:       conn,
			table:      table,
			tableID:    tableID,
			canControl: canControl,
			format:     parseFormat(c.Query("format")),
			send:       make(chan []byte, 64),
		}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// readPump reads cue input from the connection until it closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read error on table %s: %v", c.tableID, err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid message format")
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg WSMessage) {
	if msg.Type == "ping" {
		c.sendMessage(gin.H{"type": "pong"})
		return
	}
	if !c.canControl {
		c.sendError("spectators cannot control the table")
		return
	}

	switch msg.Type {
	case "aim_start":
		c.table.BeginAim()

	case "aim":
		var data AimData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid aim data")
			return
		}
		if err := c.table.AimAt(data.X, data.Y); err != nil {
			c.sendError(err.Error())
		}

	case "release":
		if err := c.table.Release(); err != nil {
			c.sendError(err.Error())
		}

	case "shoot":
		var data ShootData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid shot data")
			return
		}
		if err := c.table.Shoot(data.Angle, data.Power); err != nil {
			c.sendError(err.Error())
		}

	case "rerack":
		c.table.Rerack()

	default:
		log.Printf("[WS] Unknown message type %q on table %s", msg.Type, c.tableID)
		c.sendError("unknown message type")
	}
}
