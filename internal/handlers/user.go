package handlers

import (
	"net/http"
	"strings"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	log   *zap.Logger
	users *repository.UserRepository
}

func NewUserHandler(log *zap.Logger, users *repository.UserRepository) *UserHandler {
	return &UserHandler{log: log, users: users}
}

// Me returns the signed-in user.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateInfo(c *gin.Context) {
	user, _ := currentUser(c)
	var form struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	firstName := strings.TrimSpace(form.FirstName)
	lastName := strings.TrimSpace(form.LastName)
	if firstName == "" || lastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields."})
		return
	}

	if err := h.users.UpdateUser(c.Request.Context(), user.ID, firstName, lastName); err != nil {
		h.log.Error("Failed to update user info", zap.Error(err), zap.String("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!"})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user, _ := currentUser(c)
	var form struct {
		Password     string `json:"password"`
		Confirmation string `json:"confirmation"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if form.Confirmation != "DELETE" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please type DELETE to confirm."})
		return
	}
	if !user.CheckPassword(form.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password."})
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), user.ID); err != nil {
		h.log.Error("Failed to delete account", zap.Error(err), zap.String("userID", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account."})
		return
	}

	session := sessions.Default(c)
	session.Delete(UserIDSessionKey)
	if err := session.Save(); err != nil {
		h.log.Warn("Failed to clear session after account deletion", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted."})
}
