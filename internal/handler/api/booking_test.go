//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/internal/domain/user"
	"crafty-kid/internal/handler/api"
	resdto "crafty-kid/internal/handler/dto/response"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/commands"
	"crafty-kid/internal/usecase/queries"
	"crafty-kid/tests/common/builder"
	"crafty-kid/tests/common/httptest"
	"crafty-kid/tests/common/testutil"
	commandsmock "crafty-kid/tests/mock/commands"
	queriesmock "crafty-kid/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	parentID     uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.parentID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.parentID)
		c.Set("user_role", user.RoleParent)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings", authMiddleware, s.handler.List)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().WithParentID(s.parentID).BuildView()

	s.Run("success: returns 201 Created with the booking view", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody.ToCommand(), s.parentID).
			Return(&commands.CreateBookingResult{Booking: returnView}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Status, response.Status)
		s.Equal(returnView.AmountCents, response.AmountCents)
		s.Equal(returnView.ClassID, response.Class.ID)
		s.Equal(returnView.ClassTitle, response.Class.Title)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: class_id (required)", mutate: testutil.Field("class_id", nil)},
			{name: "missing field: schedule_id (required)", mutate: testutil.Field("schedule_id", nil)},
			{name: "malformed class_id", mutate: testutil.Field("class_id", "not-a-uuid")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "schedule not found",
				commandsError:  errs.ErrScheduleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Schedule not found",
			},
			{
				name:           "class does not match schedule",
				commandsError:  errs.ErrClassMismatch,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Class does not match schedule",
			},
			{
				name:           "no seats available",
				commandsError:  errs.ErrNoSeatsAvailable,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "No seats available",
			},
			{
				name:           "duplicate active booking",
				commandsError:  errs.ErrDuplicateBooking,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Active booking already exists",
			},
			{
				name:           "invalid booking data",
				commandsError:  errs.Mark(errs.New("amount cents must not be negative"), errs.ErrDomainValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid booking data",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody.ToCommand(), s.parentID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	url := "/bookings"

	s.Run("success: returns the parent's bookings", func() {
		items := []*queries.BookingView{
			builder.NewBookingBuilder().WithParentID(s.parentID).BuildView(),
			builder.NewBookingBuilder().WithParentID(s.parentID).AsPaid().BuildView(),
		}
		s.mockQueries.EXPECT().ListByParent(gomock.Any(), s.parentID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string][]resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response["bookings"], 2)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().ListByParent(gomock.Any(), s.parentID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().WithParentID(s.parentID).BuildView()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetOwned(gomock.Any(), bookingID, s.parentID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.Equal(returnView.VenueName, response.Class.Venue)
		s.Equal(returnView.StartsAt.Unix(), response.Schedule.StartsAt.Unix())
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 404 Not Found for missing or unowned booking", func() {
		s.mockQueries.EXPECT().GetOwned(gomock.Any(), bookingID, s.parentID).
			Return(nil, errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: cancelled with full refund", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.parentID).
			Return(&commands.CancelBookingResult{
				BookingID: bookingID,
				Status:    booking.StatusRefunded,
				Refund:    booking.RefundResult{Status: booking.RefundFull, AmountCents: 4500},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Success)
		s.Equal("full", response.Refund.Status)
		s.Equal(int64(4500), response.Refund.Amount)
	})

	s.Run("success: cancelled without refund", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.parentID).
			Return(&commands.CancelBookingResult{
				BookingID: bookingID,
				Status:    booking.StatusCancelled,
				Refund:    booking.RefundResult{Status: booking.RefundNone},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Success)
		s.Equal("none", response.Refund.Status)
		s.Equal(int64(0), response.Refund.Amount)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/invalid-uuid/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  errs.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "already cancelled",
				commandsError:  errs.ErrAlreadyCancelled,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "already cancelled",
			},
			{
				name:           "cancellation window closed",
				commandsError:  errs.ErrCancellationWindowClosed,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Cancellation window has closed",
			},
			{
				name:           "invalid booking data",
				commandsError:  errs.Mark(errs.New("amount cents must not be negative"), errs.ErrDomainValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid booking data",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.parentID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
