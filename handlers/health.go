// health.go - Liveness endpoint backed by a database ping

package handlers

import (
	"context"
	"net/http"
	"time"

	"healthtrack-backend/database"

	"github.com/gin-gonic/gin"
)

// Health reports whether the database answers a ping.
func (a *API) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second) // Bound the ping
	defer cancel()
	if err := database.Ping(ctx); err != nil { // Database unreachable
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"}) // Healthy
}
