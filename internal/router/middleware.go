package router

import (
	"context"
	"net/http"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/handlers"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserLookup loads accounts for the session middleware.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// BrowserSession gives every browser a stable id, stored in the session
// cookie, that per-browser state is keyed on.
func BrowserSession(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(handlers.BrowserContextKey).(string)
		if id == "" {
			id = uuid.NewString()
			session.Set(handlers.BrowserContextKey, id)
			if err := session.Save(); err != nil {
				log.Error("Failed to save session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
				return
			}
		}
		c.Set(handlers.BrowserContextKey, id)
		c.Next()
	}
}

// UserLoaderMiddleware checks for a userID in the session.
// If found, it loads the user from the database and adds it to the context.
// This ensures we don't have "zombie" sessions for users who no longer exist.
func UserLoaderMiddleware(users UserLookup, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(handlers.UserIDSessionKey).(string)
		if !ok || userID == "" {
			c.Next()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			// The account is gone; keep the browser id and carry on as a guest.
			log.Debug("Dropping session for unknown user", zap.String("userID", userID), zap.Error(err))
			session.Delete(handlers.UserIDSessionKey)
			if err := session.Save(); err != nil {
				log.Warn("Failed to save session", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(handlers.UserContextKey, user)
		c.Next()
	}
}

// AuthRequired rejects requests that have no signed-in user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(handlers.UserContextKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please sign in first."})
			return
		}
		c.Next()
	}
}
