package middleware

import (
	"time"

	"github.com/crownweb/contact-relay/internal/logging"
	"github.com/crownweb/contact-relay/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the singleton logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		logger := logging.GetLogger()
		logger.Info("%s %s | %d | %s | %s | %s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			utils.GetRealIP(c),
			c.GetString("RequestID"),
			latency,
		)
	}
}
