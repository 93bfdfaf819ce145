package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiards/internal/api/handlers"
	"github.com/playmatatu/billiards/internal/config"
	"github.com/playmatatu/billiards/internal/middleware"
	"github.com/playmatatu/billiards/internal/session"
	"github.com/playmatatu/billiards/internal/ws"
)

// Services are the collaborators the routes depend on. Shots and LastShots
// stay nil when no database or Redis is configured.
type Services struct {
	Manager   *session.Manager
	Hub       *ws.Hub
	Shots     handlers.ShotLister
	LastShots handlers.LastShotReader
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, svc Services, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(svc.Manager))
		v1.GET("/config", handlers.GetConfig(cfg))

		tables := v1.Group("/tables")
		{
			tables.POST("", handlers.CreateTable(svc.Manager, cfg))
			tables.GET("/:id", handlers.GetTable(svc.Manager))
			tables.GET("/:id/shots", handlers.ListShots(svc.Shots))
			tables.GET("/:id/last-shot", handlers.GetLastShot(svc.LastShots))
			tables.GET("/:id/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleTableWebSocket(svc.Hub, svc.Manager, cfg))

			owner := tables.Group("/:id", middleware.TableAuth(cfg))
			{
				owner.POST("/shot", handlers.TakeShot(svc.Manager))
				owner.POST("/rerack", handlers.Rerack(svc.Manager))
				owner.DELETE("", handlers.CloseTable(svc.Manager))
			}
		}
	}
}
