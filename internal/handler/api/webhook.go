package api

import (
	"log/slog"
	"net/http"

	"crafty-kid/internal/handler/httperr"
	"crafty-kid/internal/infra/payment"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const stripeSignatureHeader = "Stripe-Signature"

type WebhookHandler struct {
	cmds commands.WebhookCommands
}

func NewWebhookHandler(cmds commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{cmds: cmds}
}

// @Summary Payment gateway webhook
// @Description Receives signed gateway events and reconciles booking state
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payments/webhook [post]
func (h *WebhookHandler) Handle(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Failed to read request body", nil)
		return
	}

	err = h.cmds.HandleEvent(c.Request.Context(), payload, c.GetHeader(stripeSignatureHeader))
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrGatewayNotConfigured):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Payment gateway not configured", nil)
		case payment.IsSignatureError(err):
			// Fail closed: an unverifiable payload gets no acknowledgement
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook signature", nil)
		default:
			// Once verified, reconciliation failures are logged and absorbed;
			// a retry from the gateway cannot fix a non-transient mismatch.
			slog.Error("webhook reconciliation failed", "error", err.Error())
		}
	}
	if c.IsAborted() {
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
