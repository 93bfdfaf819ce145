package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiards/internal/config"
	"github.com/playmatatu/billiards/internal/session"
	"github.com/playmatatu/billiards/internal/ws"
)

// HandleTableWebSocket streams frames for a table and accepts cue input.
func HandleTableWebSocket(hub *ws.Hub, manager *session.Manager, cfg *config.Config) gin.HandlerFunc {
	return ws.HandleWebSocket(hub, manager, cfg)
}
