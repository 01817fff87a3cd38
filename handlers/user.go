// user.go - Local profile of the Supabase-authenticated user

package handlers

import (
	"net/http"

	"healthtrack-backend/middleware"
	"healthtrack-backend/services"

	"github.com/gin-gonic/gin"
)

// SyncUser upserts the caller's row from token claims plus optional name/avatar.
func (a *API) SyncUser(c *gin.Context) {
	var input services.UserInput
	if !bindOptionalJSON(c, &input) {
		return
	}
	user, err := services.SyncUser(c.Request.Context(), middleware.CurrentUserID(c), c.GetString(middleware.EmailKey), input) // Upsert from claims
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) GetMe(c *gin.Context) {
	user, err := services.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *API) UpdateMe(c *gin.Context) {
	var input services.UserInput
	if !bindOptionalJSON(c, &input) { // empty body leaves the profile as is
		return
	}
	user, err := services.UpdateUser(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		a.respondError(c, err)
		return
	}
	a.publish(user.ID, "user.updated", user) // Notify open sockets
	c.JSON(http.StatusOK, user)              // Return the updated profile
}

// DeleteMe removes the caller's local data. The Supabase account itself is
// untouched; the next request with the same token provisions a fresh row.
func (a *API) DeleteMe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if err := services.DeleteUser(c.Request.Context(), userID); err != nil {
		a.respondError(c, err)
		return
	}
	if a.Provisioner != nil {
		a.Provisioner.Forget(userID) // so the next request recreates the row
	}
	c.JSON(http.StatusOK, gin.H{"message": "account data deleted"})
}
