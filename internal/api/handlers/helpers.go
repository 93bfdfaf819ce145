package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/billiards/internal/game"
	"github.com/playmatatu/billiards/internal/session"
)

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrTooManySessions):
		status = http.StatusServiceUnavailable
	case errors.Is(err, session.ErrInvalidPower),
		errors.Is(err, session.ErrInvalidAngle),
		errors.Is(err, session.ErrInvalidTarget):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrCueBallCaptured):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
