package utils

import (
	"net/http"

	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"

	"github.com/gin-gonic/gin"
)

// RespondSuccess sends the success payload for a dispatched submission.
func RespondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, contact.SendResponse{Success: true})
}

// RespondFailure sends a business failure with a user-facing message.
// Business failures keep HTTP 200; only the fallback handlers use 404/500.
func RespondFailure(c *gin.Context, message string) {
	c.JSON(http.StatusOK, contact.SendResponse{Success: false, Message: message})
}

// RespondSilentFailure sends success=false with no message. Used for the
// honeypot path, which deliberately gives bots nothing to learn from.
func RespondSilentFailure(c *gin.Context) {
	c.JSON(http.StatusOK, contact.SendResponse{Success: false})
}
