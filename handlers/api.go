// api.go - Shared handler dependencies and response helpers

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"healthtrack-backend/creem"
	"healthtrack-backend/metrics"
	"healthtrack-backend/middleware"
	"healthtrack-backend/realtime"
	"healthtrack-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// API bundles what the handlers need beyond the global database handle.
type API struct {
	Log   *zap.Logger
	Hub   *realtime.Hub
	Creem *creem.Client

	Provisioner *middleware.Provisioner // forgets users whose rows are deleted

	ProductID     string // default Creem product
	SuccessURL    string
	WebhookSecret string // empty disables signature checks
}

// respondError maps service errors to statuses; anything unexpected is a 500
// and is logged rather than echoed.
func (a *API) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		a.Log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// publish pushes a change event to the user's sockets.
func (a *API) publish(userID, eventType string, data interface{}) {
	if a.Hub == nil {
		return
	}
	metrics.RecordEvent(eventType)
	a.Hub.Publish(userID, eventType, data)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON accepts an empty body as "no fields".
func bindOptionalJSON(c *gin.Context, v interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
