package api

import (
	"errors"
	"net/http"

	resdto "crafty-kid/internal/handler/dto/response"
	"crafty-kid/internal/handler/httperr"
	"crafty-kid/internal/handler/middleware"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

type createIntentRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
}

// @Summary Create payment intent
// @Description Get (or reuse) a confirmable payment intent for a reserved booking
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createIntentRequest true "Intent request"
// @Success 200 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /payments/intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	parentID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}

	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.EnsureIntent(c.Request.Context(), req.BookingID, parentID)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrGatewayNotConfigured):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Payment gateway not configured", nil)
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errs.Is(err, errs.ErrNotPayable):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking is not in a payable state", nil)
		case errs.Is(err, errs.ErrGatewayUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Payment gateway unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromEnsureIntentResult(result))
}
