// medications.go - /api/diseases/medications handlers

package handlers

import (
	"net/http"
	"strconv"

	"healthtrack-backend/middleware"
	"healthtrack-backend/services"

	"github.com/gin-gonic/gin"
)

// ListMedications requires ?diseaseId= naming one of the caller's diseases.
func (a *API) ListMedications(c *gin.Context) {
	raw := c.Query("diseaseId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "diseaseId is required"})
		return
	}
	diseaseID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || diseaseID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diseaseId"})
		return
	}
	list, err := services.ListMedications(c.Request.Context(), middleware.CurrentUserID(c), uint(diseaseID))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) CreateMedication(c *gin.Context) {
	var input services.MedicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.CurrentUserID(c)
	m, err := services.CreateMedication(c.Request.Context(), userID, input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "medication.created", m)
	c.JSON(http.StatusCreated, m)
}

func (a *API) UpdateMedication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.MedicationInput
	if !bindOptionalJSON(c, &input) {
		return
	}
	userID := middleware.CurrentUserID(c)
	m, err := services.UpdateMedication(c.Request.Context(), userID, id, input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "medication.updated", m)
	c.JSON(http.StatusOK, m)
}

func (a *API) DeleteMedication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := middleware.CurrentUserID(c)
	if err := services.DeleteMedication(c.Request.Context(), userID, id); err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "medication.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "medication deleted"})
}
