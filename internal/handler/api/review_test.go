//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

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

type ReviewHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReviewCommands
	mockQueries  *queriesmock.MockReviewQueries
	handler      *api.ReviewHandler
	parentID     uuid.UUID
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReviewCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.handler = api.NewReviewHandler(s.mockCommands, s.mockQueries)
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

	s.router.POST("/reviews", authMiddleware, s.handler.Submit)
	s.router.GET("/reviews", s.handler.ListByTarget)
	s.router.GET("/instructors/:id/rating-stats", s.handler.InstructorRatingStats)
	s.router.POST("/admin/reviews/:id/flag", authMiddleware, s.handler.Flag)
}

func (s *ReviewHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}

type testCaseReview struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestSubmit
// ================================================================================

func (s *ReviewHandlerTestSuite) TestSubmit() {
	url := "/reviews"

	reviewBuilder := builder.NewReviewBuilder().WithParentID(s.parentID)
	reqBody := reviewBuilder.BuildSubmitRequestDTO()
	returnView := reviewBuilder.BuildView()
	expectedResult := &commands.SubmitReviewResult{ReviewID: returnView.ID, Verified: true}

	// Validation boundary cases
	bound := []testCaseReview{
		{name: "rating boundary OK (1)", mutate: testutil.Field("rating", 1), expectCode: http.StatusCreated},
		{name: "rating boundary OK (5)", mutate: testutil.Field("rating", 5), expectCode: http.StatusCreated},
		{name: "rating boundary invalid (0)", mutate: testutil.Field("rating", 0), expectCode: http.StatusBadRequest},
		{name: "rating boundary invalid (6)", mutate: testutil.Field("rating", 6), expectCode: http.StatusBadRequest},
		{name: "title length OK (120 chars)", mutate: testutil.Field("title", strings.Repeat("a", 120)), expectCode: http.StatusCreated},
		{name: "title length invalid (121 chars)", mutate: testutil.Field("title", strings.Repeat("a", 121)), expectCode: http.StatusBadRequest},
		{name: "body length OK (2000 chars)", mutate: testutil.Field("body", strings.Repeat("a", 2000)), expectCode: http.StatusCreated},
		{name: "body length invalid (2001 chars)", mutate: testutil.Field("body", strings.Repeat("a", 2001)), expectCode: http.StatusBadRequest},
		{name: "target type invalid (parent)", mutate: testutil.Field("target_type", "parent"), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseReview{
		{name: "missing field: target_type (required)", mutate: testutil.Field("target_type", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: target_id (required)", mutate: testutil.Field("target_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: rating (required)", mutate: testutil.Field("rating", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: title (required)", mutate: testutil.Field("title", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: body (required)", mutate: testutil.Field("body", nil), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created with the stored review", func() {
		s.mockCommands.EXPECT().SubmitReview(gomock.Any(), reqBody.ToCommand(), s.parentID).
			Return(expectedResult, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID.String(), response.ID)
		s.Equal(returnView.Rating, response.Rating)
		s.True(response.Verified)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, group := range [][]testCaseReview{bound, missing} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().SubmitReview(gomock.Any(), gomock.Any(), s.parentID).
							Return(expectedResult, nil).Times(1)
						s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
							Return(returnView, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
					}
				})
			}
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
				name:           "booking not eligible",
				commandsError:  errs.ErrReviewNotEligible,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "not eligible for review",
			},
			{
				name:           "duplicate review",
				commandsError:  errs.ErrDuplicateReview,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Review already exists",
			},
			{
				name:           "domain validation failed",
				commandsError:  errs.Mark(errs.New("invalid review target type"), errs.ErrDomainValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid review data",
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
				s.mockCommands.EXPECT().SubmitReview(gomock.Any(), reqBody.ToCommand(), s.parentID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 500 when the stored review cannot be read back", func() {
		s.mockCommands.EXPECT().SubmitReview(gomock.Any(), reqBody.ToCommand(), s.parentID).
			Return(expectedResult, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load review")
	})
}

// ================================================================================
// TestListByTarget
// ================================================================================

func (s *ReviewHandlerTestSuite) TestListByTarget() {
	targetID := uuid.New()
	baseURL := "/reviews?target_type=class&target_id=" + targetID.String()

	page := &queries.ReviewPage{
		Reviews: []*queries.ReviewView{
			builder.NewReviewBuilder().WithTargetID(targetID).BuildView(),
			builder.NewReviewBuilder().WithTargetID(targetID).AsPoorRating().BuildView(),
		},
		Total:   2,
		Page:    1,
		Limit:   20,
		HasMore: false,
	}

	s.Run("success: returns the review page with defaults", func() {
		s.mockQueries.EXPECT().ListByTarget(gomock.Any(), "class", targetID, 1, 20).
			Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")

		var response resdto.ReviewPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Reviews, 2)
		s.Equal(int64(2), response.Total)
		s.False(response.HasMore)
	})

	s.Run("success: pagination parameters pass through", func() {
		s.mockQueries.EXPECT().ListByTarget(gomock.Any(), "class", targetID, 2, 10).
			Return(&queries.ReviewPage{Reviews: page.Reviews[:1], Total: 11, Page: 2, Limit: 10, HasMore: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"&page=2&limit=10", nil, "")

		var response resdto.ReviewPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Reviews, 1)
		s.True(response.HasMore)
	})

	s.Run("error: 400 Bad Request for invalid target type", func() {
		url := "/reviews?target_type=parent&target_id=" + targetID.String()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid target type")
	})

	s.Run("error: 400 Bad Request for invalid target UUID", func() {
		url := "/reviews?target_type=class&target_id=invalid-uuid"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid target ID format")
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().ListByTarget(gomock.Any(), "class", targetID, 1, 20).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestInstructorRatingStats
// ================================================================================

func (s *ReviewHandlerTestSuite) TestInstructorRatingStats() {
	instructorID := uuid.New()
	url := "/instructors/" + instructorID.String() + "/rating-stats"

	expectedStats := &queries.InstructorRatingStats{
		InstructorID: instructorID,
		RatingAvg:    4.5,
		RatingCount:  12,
	}

	s.Run("success: returns 200 OK with InstructorRatingStatsResponse", func() {
		s.mockQueries.EXPECT().GetInstructorRatingStats(gomock.Any(), instructorID).
			Return(expectedStats, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.InstructorRatingStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(instructorID.String(), response.InstructorID)
		s.Equal(4.5, response.RatingAvg)
		s.Equal(int32(12), response.RatingCount)
	})

	s.Run("error: 400 Bad Request for invalid instructor UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/instructors/invalid-uuid/rating-stats", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid instructor ID format")
	})

	s.Run("error: 404 Not Found for unknown instructor", func() {
		s.mockQueries.EXPECT().GetInstructorRatingStats(gomock.Any(), instructorID).
			Return(nil, errors.New("no rows")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Instructor not found")
	})
}

// ================================================================================
// TestFlag
// ================================================================================

func (s *ReviewHandlerTestSuite) TestFlag() {
	reviewID := uuid.New()
	url := "/admin/reviews/" + reviewID.String() + "/flag"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().FlagReview(gomock.Any(), reviewID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/reviews/invalid-uuid/flag", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid review ID format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 Not Found for unknown review", func() {
		s.mockCommands.EXPECT().FlagReview(gomock.Any(), reviewID).
			Return(errs.ErrReviewNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Review not found")
	})

	s.Run("error: 500 Internal Server Error on repository failure", func() {
		s.mockCommands.EXPECT().FlagReview(gomock.Any(), reviewID).
			Return(errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
