package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiards/internal/config"
)

// GetConfig returns the physics values a renderer needs to draw and aim.
func GetConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"table_width":  cfg.TableWidth,
			"table_height": cfg.TableHeight,
			"physics":      cfg.PhysicsParams(),
			"frame_rate":   cfg.FrameRate,
		})
	}
}
