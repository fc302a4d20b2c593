package handlers

import (
	"errors"
	"net/http"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/auth"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	log      *zap.Logger
	provider *auth.Provider
}

func NewAuthHandler(log *zap.Logger, provider *auth.Provider) *AuthHandler {
	return &AuthHandler{log: log, provider: provider}
}

// CSRFToken hands the browser the token it must echo in X-CSRF-Token.
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	token, _ := c.Get("csrf_token")
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form auth.Account
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.provider.CreateAccount(c.Request.Context(), browserID(c), form)
	if err != nil {
		h.authError(c, err, "Failed to register")
		return
	}
	if err := h.saveUserID(c, user.ID); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully!", "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.provider.SignIn(c.Request.Context(), browserID(c), form.Email, form.Password)
	if err != nil {
		h.authError(c, err, "Failed to login")
		return
	}
	if err := h.saveUserID(c, user.ID); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully!", "user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(UserIDSessionKey)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	h.provider.SignOut(browserID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) saveUserID(c *gin.Context, userID string) error {
	session := sessions.Default(c)
	session.Set(UserIDSessionKey, userID)
	return session.Save()
}

func (h *AuthHandler) authError(c *gin.Context, err error, fallback string) {
	var missing *auth.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields.", "fields": missing.Fields})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
	default:
		h.log.Error("Authentication failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
