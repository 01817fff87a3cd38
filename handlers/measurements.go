// measurements.go - /api/measurements handlers

package handlers

import (
	"net/http"
	"strconv"

	"healthtrack-backend/middleware"
	"healthtrack-backend/services"

	"github.com/gin-gonic/gin"
)

const maxListLimit = 1000

func (a *API) ListMeasurements(c *gin.Context) {
	var filter services.MeasurementFilter
	if from := c.Query("from"); from != "" {
		t, err := services.ParseTime(from)
		if err != nil {
			a.respondError(c, err)
			return
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, exclusive, err := services.ParseRangeEnd(to)
		if err != nil {
			a.respondError(c, err)
			return
		}
		if exclusive {
			filter.Before = &t // to=YYYY-MM-DD includes that whole day
		} else {
			filter.To = &t
		}
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > maxListLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
			return
		}
		filter.Limit = n
	}

	list, err := services.ListMeasurements(c.Request.Context(), middleware.CurrentUserID(c), filter)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) LatestMeasurement(c *gin.Context) {
	m, err := services.LatestMeasurement(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (a *API) CreateMeasurement(c *gin.Context) {
	var input services.MeasurementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.CurrentUserID(c)
	m, err := services.CreateMeasurement(c.Request.Context(), userID, input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "measurement.created", m)
	c.JSON(http.StatusCreated, m)
}

func (a *API) UpdateMeasurement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.MeasurementInput
	if !bindOptionalJSON(c, &input) {
		return
	}
	userID := middleware.CurrentUserID(c)
	m, err := services.UpdateMeasurement(c.Request.Context(), userID, id, input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "measurement.updated", m)
	c.JSON(http.StatusOK, m)
}

func (a *API) DeleteMeasurement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := middleware.CurrentUserID(c)
	if err := services.DeleteMeasurement(c.Request.Context(), userID, id); err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "measurement.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "measurement deleted"})
}
