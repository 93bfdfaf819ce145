package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiards/internal/config"
	"github.com/playmatatu/billiards/internal/middleware"
	"github.com/playmatatu/billiards/internal/models"
	"github.com/playmatatu/billiards/internal/session"
)

// ShotLister reads the shot journal.
type ShotLister interface {
	ListShots(ctx context.Context, tableID string, limit int) ([]models.ShotRecord, error)
}

// LastShotReader reads the most recent settled shot of a table.
type LastShotReader interface {
	LastShot(ctx context.Context, tableID string) (*session.ShotSummary, error)
}

// Smallest table that still separates the cue ball from the rack.
const (
	minTableWidth  = 600
	minTableHeight = 300
	maxTableWidth  = 5000
	maxTableHeight = 2500
)

// validSize accepts zero (use the configured size) or a value in [lo, hi].
func validSize(v, lo, hi float64) bool {
	return v == 0 || (v >= lo && v <= hi)
}

// CreateTable opens a racked table and returns its control token.
func CreateTable(manager *session.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table request"})
				return
			}
		}

		if !validSize(req.Width, minTableWidth, maxTableWidth) || !validSize(req.Height, minTableHeight, maxTableHeight) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "table size out of range"})
			return
		}

		table, err := manager.Create(req.Width, req.Height)
		if err != nil {
			respondError(c, err)
			return
		}

		ttl := time.Duration(cfg.TableTokenTTLHours) * time.Hour
		token, err := middleware.IssueTableToken(cfg.JWTSecret, table.ID, ttl)
		if err != nil {
			log.Printf("[API] Failed to sign token for table %s: %v", table.ID, err)
			manager.Close(table.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Header("X-Table-ID", table.ID)
		c.JSON(http.StatusCreated, gin.H{
			"id":      table.ID,
			"token":   token,
			"table":   table.Table(),
			"physics": table.Params(),
			"frame":   table.Snapshot(),
		})
	}
}

// GetTable returns the current frame of a table.
func GetTable(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, err := manager.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":         table.ID,
			"table":      table.Table(),
			"frame":      table.Snapshot(),
			"shot_count": table.ShotCount(),
		})
	}
}

// TakeShot queues a shot on the table.
func TakeShot(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Angle *float64 `json:"angle" binding:"required"`
			Power *float64 `json:"power" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "angle and power are required"})
			return
		}

		table, err := manager.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := table.Shoot(*req.Angle, *req.Power); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
	}
}

// Rerack resets a table to the standard rack.
func Rerack(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, err := manager.Get(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		table.Rerack()
		c.JSON(http.StatusOK, gin.H{"frame": table.Snapshot()})
	}
}

// CloseTable stops a table.
func CloseTable(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := manager.Close(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ListShots returns journal entries for a table.
func ListShots(shots ShotLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shots == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shot journal is not configured"})
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		records, err := shots.ListShots(c.Request.Context(), c.Param("id"), limit)
		if err != nil {
			log.Printf("[API] ListShots failed for table %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shots"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"shots": records})
	}
}

// GetLastShot returns the latest settled shot of a table.
func GetLastShot(reader LastShotReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reader == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shot events are not configured"})
			return
		}

		shot, err := reader.LastShot(c.Request.Context(), c.Param("id"))
		if err != nil {
			log.Printf("[API] LastShot failed for table %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load last shot"})
			return
		}
		if shot == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no shot recorded"})
			return
		}
		c.JSON(http.StatusOK, shot)
	}
}
