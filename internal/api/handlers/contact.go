package handlers

import (
	"errors"
	"net/http"

	"github.com/crownweb/contact-relay/internal/api/constants"
	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"
	"github.com/crownweb/contact-relay/internal/api/validation"
	"github.com/crownweb/contact-relay/internal/logging"
	"github.com/crownweb/contact-relay/internal/service"
	"github.com/crownweb/contact-relay/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactHandler orchestrates the send-email pipeline:
// honeypot check -> field check -> format check -> dispatch -> response.
type ContactHandler struct {
	validator *validation.Validator
	sender    service.Sender
	debugMode bool
}

// NewContactHandler creates a contact handler. debugMode controls whether
// dispatch error detail is echoed in the response.
func NewContactHandler(validator *validation.Validator, sender service.Sender, debugMode bool) *ContactHandler {
	return &ContactHandler{
		validator: validator,
		sender:    sender,
		debugMode: debugMode,
	}
}

// Send handles POST /send-email. Every business outcome responds with
// HTTP 200 and the uniform {success, message?, debug?} payload.
func (h *ContactHandler) Send(c *gin.Context) {
	logger := logging.GetLogger()

	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		logger.Warn("Malformed submission body from %s: %v", utils.GetRealIP(c), err)
		utils.RespondFailure(c, constants.MsgMissingFields)
		return
	}

	if rej := h.validator.Validate(&sub); rej != nil {
		if rej.Silent {
			// Honeypot hit: drop silently, do not tell the bot why
			logger.Debug("Honeypot triggered from %s", utils.GetRealIP(c))
			utils.RespondSilentFailure(c)
			return
		}
		utils.RespondFailure(c, rej.Message)
		return
	}

	if err := h.sender.Send(c.Request.Context(), &sub); err != nil {
		if errors.Is(err, service.ErrAuthRefresh) {
			logger.Error("Dispatch blocked by auth refresh failure: %v", err)
		} else {
			logger.Error("Failed to send email: %v", err)
		}

		resp := contact.SendResponse{Success: false, Message: constants.MsgSendFailed}
		if h.debugMode {
			resp.Debug = err.Error()
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	utils.RespondSuccess(c)
}
