// diseases.go - /api/diseases handlers

package handlers

import (
	"net/http"

	"healthtrack-backend/middleware"
	"healthtrack-backend/services"

	"github.com/gin-gonic/gin"
)

func (a *API) ListDiseases(c *gin.Context) {
	list, err := services.ListDiseases(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) GetDisease(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	d, err := services.GetDisease(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (a *API) CreateDisease(c *gin.Context) {
	var input services.DiseaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.CurrentUserID(c)
	d, err := services.CreateDisease(c.Request.Context(), userID, input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "disease.created", d)
	c.JSON(http.StatusCreated, d)
}

func (a *API) UpdateDisease(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.DiseaseInput
	if !bindOptionalJSON(c, &input) {
		return
	}
	userID := middleware.CurrentUserID(c)
	d, err := services.UpdateDisease(c.Request.Context(), userID, id, input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "disease.updated", d)
	c.JSON(http.StatusOK, d)
}

func (a *API) DeleteDisease(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID := middleware.CurrentUserID(c)
	if err := services.DeleteDisease(c.Request.Context(), userID, id); err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(userID, "disease.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"message": "disease deleted"})
}
