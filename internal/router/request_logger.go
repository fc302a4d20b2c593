package router

import (
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/handlers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs every request once it has been handled. Requests under
// /assets are not logged unless they fail.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if browser := c.GetString(handlers.BrowserContextKey); browser != "" {
			fields = append(fields, zap.String("browser", browser))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("Server error", fields...)
		case status >= 400:
			log.Warn("Client error", fields...)
		case c.FullPath() == "/assets/*filepath":
		default:
			log.Debug("Request processed", fields...)
		}
	}
}
