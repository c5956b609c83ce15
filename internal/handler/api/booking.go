package api

import (
	"errors"
	"net/http"

	reqdto "crafty-kid/internal/handler/dto/request"
	resdto "crafty-kid/internal/handler/dto/response"
	"crafty-kid/internal/handler/httperr"
	"crafty-kid/internal/handler/middleware"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/commands"
	"crafty-kid/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Reserve a seat on a class schedule
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	parentID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), req.ToCommand(), parentID)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrScheduleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Schedule not found", nil)
		case errs.Is(err, errs.ErrClassMismatch):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Class does not match schedule", nil)
		case errs.Is(err, errs.ErrNoSeatsAvailable):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "No seats available", nil)
		case errs.Is(err, errs.ErrDuplicateBooking):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Active booking already exists for this schedule", nil)
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(result.Booking))
}

// @Summary List own bookings
// @Description List the authenticated parent's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	parentID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}

	items, err := h.q.ListByParent(c.Request.Context(), parentID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": resdto.FromBookingList(items)})
}

// @Summary Get booking
// @Description Get an owned booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}
	parentID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}

	view, err := h.q.GetOwned(c.Request.Context(), id, parentID)
	if err != nil {
		if errs.Is(err, errs.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel an owned booking; refunds the payment when one succeeded
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}
	parentID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}

	result, err := h.cmds.CancelBooking(c.Request.Context(), id, parentID)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errs.Is(err, errs.ErrAlreadyCancelled):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking is already cancelled", nil)
		case errs.Is(err, errs.ErrCancellationWindowClosed):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cancellation window has closed", nil)
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}
