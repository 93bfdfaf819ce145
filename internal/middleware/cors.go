package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiards/internal/config"
)

// originAllowed reports whether a browser origin may use the API. Development
// accepts any local dev server; otherwise only FRONTEND_URL is trusted.
func originAllowed(cfg *config.Config, origin string) bool {
	if cfg.Environment == "development" {
		return strings.HasPrefix(origin, "http://localhost:") ||
			strings.HasPrefix(origin, "http://127.0.0.1:")
	}
	return cfg.FrontendURL != "" && origin == cfg.FrontendURL
}

// CORSMiddleware returns a CORS middleware configured for the environment
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	log.Printf("[CORS] Environment: %s, FrontendURL: %s", cfg.Environment, cfg.FrontendURL)

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return originAllowed(cfg, origin)
		},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Authorization",
			"Accept", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length", "X-Table-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// WebSocketCORSCheck validates WebSocket upgrade origins
func WebSocketCORSCheck(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}

		// Native clients (the terminal renderer, bots) send no Origin.
		origin := c.GetHeader("Origin")
		if origin != "" && !originAllowed(cfg, origin) {
			log.Printf("[CORS] Rejected websocket origin %s", origin)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "WebSocket origin not allowed"})
			return
		}

		c.Next()
	}
}
