package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/crownweb/contact-relay/internal/api/constants"
	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"
	"github.com/crownweb/contact-relay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics into the generic 500 payload. The stack trace is
// logged server-side and never reaches the client.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger := logging.GetLogger()
				logger.Error("Panic recovered: %v | %s %s | %s\n%s",
					err,
					c.Request.Method,
					c.Request.URL.Path,
					c.GetString("RequestID"),
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, contact.SendResponse{
					Success: false,
					Message: constants.MsgInternalError,
				})
			}
		}()

		c.Next()
	}
}
