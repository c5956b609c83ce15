//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"crafty-kid/internal/handler/api"
	"crafty-kid/internal/infra/payment"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/tests/common/httptest"
	commandsmock "crafty-kid/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockWebhookCommands
	handler      *api.WebhookHandler
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockWebhookCommands(s.mockCtrl)
	s.handler = api.NewWebhookHandler(s.mockCommands)

	// No auth middleware: the endpoint authenticates by signature
	s.router.POST("/payments/webhook", s.handler.Handle)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) TestHandle() {
	url := "/payments/webhook"
	payload := []byte(`{"type":"payment_intent.succeeded"}`)
	signature := "t=1,v1=abc"
	headers := map[string]string{
		"Content-Type":     "application/json",
		"Stripe-Signature": signature,
	}

	s.Run("success: acknowledges a handled event", func() {
		s.mockCommands.EXPECT().HandleEvent(gomock.Any(), payload, signature).
			Return(nil).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)

		var response map[string]bool
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response["received"])
	})

	s.Run("error: 400 Bad Request on signature verification failure", func() {
		// The verifier marks the Stripe library error rather than wrapping
		// the sentinel, so the handler must match it through the mark.
		verifierErr := errs.Mark(
			errs.Wrap(errs.New("no valid signature found"), "failed to verify webhook signature"),
			payment.ErrWebhookSignature)
		s.mockCommands.EXPECT().HandleEvent(gomock.Any(), payload, signature).
			Return(verifierErr).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid webhook signature")
	})

	s.Run("error: 503 Service Unavailable when the gateway is not configured", func() {
		s.mockCommands.EXPECT().HandleEvent(gomock.Any(), payload, signature).
			Return(errs.ErrGatewayNotConfigured).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Payment gateway not configured")
	})

	s.Run("success: reconciliation failures are absorbed after a valid signature", func() {
		s.mockCommands.EXPECT().HandleEvent(gomock.Any(), payload, signature).
			Return(errors.New("booking state mismatch")).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload, headers)

		var response map[string]bool
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response["received"])
	})

	s.Run("success: missing signature header still reaches the verifier", func() {
		s.mockCommands.EXPECT().HandleEvent(gomock.Any(), payload, "").
			Return(errs.Mark(errs.New("missing signature header"), payment.ErrWebhookSignature)).Times(1)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, payload,
			map[string]string{"Content-Type": "application/json"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid webhook signature")
	})
}
