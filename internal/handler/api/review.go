package api

import (
	"errors"
	"net/http"
	"strconv"

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

type ReviewHandler struct {
	cmds commands.ReviewCommands
	q    queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q}
}

// @Summary Submit review
// @Description Submit a review for a class, instructor or venue
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitReviewRequest true "Review request"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	parentID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing auth context"), "Unauthorized", nil)
		return
	}

	var req reqdto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.SubmitReview(c.Request.Context(), req.ToCommand(), parentID)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrReviewNotEligible):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking is not eligible for review", nil)
		case errs.Is(err, errs.ErrDuplicateReview):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Review already exists for this target", nil)
		case errs.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.ReviewID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load review", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReviewView(view))
}

// @Summary List reviews
// @Description List non-flagged reviews for a target, newest first
// @Tags reviews
// @Produce json
// @Param target_type query string true "Target type (class|instructor|venue)"
// @Param target_id query string true "Target ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} resdto.ReviewPageResponse
// @Failure 400 {object} httperr.Response
// @Router /reviews [get]
func (h *ReviewHandler) ListByTarget(c *gin.Context) {
	targetType := c.Query("target_type")
	if targetType != "class" && targetType != "instructor" && targetType != "venue" {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("invalid target_type"), "Invalid target type", nil)
		return
	}
	targetID, err := uuid.Parse(c.Query("target_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid target ID format", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.q.ListByTarget(c.Request.Context(), targetType, targetID, page, limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReviewPage(result))
}

// @Summary Instructor rating stats
// @Description Get the denormalized rating aggregate for an instructor
// @Tags reviews
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} resdto.InstructorRatingStatsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /instructors/{id}/rating-stats [get]
func (h *ReviewHandler) InstructorRatingStats(c *gin.Context) {
	instructorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid instructor ID format", nil)
		return
	}

	stats, err := h.q.GetInstructorRatingStats(c.Request.Context(), instructorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Instructor not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInstructorRatingStats(stats))
}

// @Summary Flag review
// @Description Hide a review from public surfaces and recompute aggregates (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/reviews/{id}/flag [post]
func (h *ReviewHandler) Flag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid review ID format", nil)
		return
	}

	if err := h.cmds.FlagReview(c.Request.Context(), id); err != nil {
		if errs.Is(err, errs.ErrReviewNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Review not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.Status(http.StatusNoContent)
}
