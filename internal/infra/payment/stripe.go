package payment

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"

	"crafty-kid/internal/pkg/config"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/shared"
)

const (
	metadataBookingID = "booking_id"
	metadataParentID  = "parent_id"
)

var ErrWebhookSignature = errs.New("webhook signature verification failed")

// StripeGateway adapts the Stripe API to the PaymentGateway port. Booking and
// parent IDs travel in intent metadata so webhook events can be correlated
// back without any extra storage.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, params shared.CreateIntentParams) (*shared.GatewayIntent, error) {
	piParams := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(params.AmountCents),
		Currency: stripe.String(params.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	piParams.AddMetadata(metadataBookingID, params.BookingID.String())
	piParams.AddMetadata(metadataParentID, params.ParentID.String())

	pi, err := g.api.PaymentIntents.New(piParams)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to create payment intent"), errs.ErrGatewayUnavailable)
	}
	return toGatewayIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (*shared.GatewayIntent, error) {
	piParams := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}
	piParams.AddExpand("latest_charge")

	pi, err := g.api.PaymentIntents.Get(intentID, piParams)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to retrieve payment intent"), errs.ErrGatewayUnavailable)
	}
	return toGatewayIntent(pi), nil
}

func (g *StripeGateway) Refund(ctx context.Context, intentID string, amountCents int64) error {
	refundParams := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(amountCents),
	}
	if _, err := g.api.Refunds.New(refundParams); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to refund payment intent"), errs.ErrGatewayUnavailable)
	}
	return nil
}

// StripeWebhookVerifier authenticates incoming webhook payloads with the
// endpoint signing secret and maps Stripe event types onto the closed
// PaymentEvent variant set.
type StripeWebhookVerifier struct {
	signingSecret string
}

func NewStripeWebhookVerifier(cfg config.StripeConfig) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{signingSecret: cfg.WebhookSecret}
}

func (v *StripeWebhookVerifier) VerifyEvent(payload []byte, signatureHeader string) (*shared.PaymentEvent, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, v.signingSecret)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "failed to verify webhook signature"), ErrWebhookSignature)
	}

	rawType := string(event.Type)
	kind := eventKindFor(rawType)
	if kind == shared.EventUnhandled {
		return &shared.PaymentEvent{Kind: shared.EventUnhandled, RawType: rawType}, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, errs.Wrap(err, "failed to decode payment intent from event")
	}

	return &shared.PaymentEvent{
		Kind:    kind,
		Intent:  *toGatewayIntent(&pi),
		RawType: rawType,
	}, nil
}

func IsSignatureError(err error) bool {
	return errs.Is(err, ErrWebhookSignature)
}

func eventKindFor(eventType string) shared.PaymentEventKind {
	switch eventType {
	case "payment_intent.succeeded":
		return shared.EventPaymentSucceeded
	case "payment_intent.payment_failed":
		return shared.EventPaymentFailed
	case "payment_intent.canceled":
		return shared.EventPaymentCanceled
	default:
		return shared.EventUnhandled
	}
}

func toGatewayIntent(pi *stripe.PaymentIntent) *shared.GatewayIntent {
	intent := &shared.GatewayIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  pi.Amount,
	}

	if id, err := uuid.Parse(pi.Metadata[metadataBookingID]); err == nil {
		intent.BookingID = &id
	}
	if id, err := uuid.Parse(pi.Metadata[metadataParentID]); err == nil {
		intent.ParentID = &id
	}
	if pi.LatestCharge != nil && pi.LatestCharge.ReceiptURL != "" {
		receiptURL := pi.LatestCharge.ReceiptURL
		intent.ReceiptURL = &receiptURL
	}
	if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
		msg := pi.LastPaymentError.Msg
		intent.FailureMsg = &msg
	}
	return intent
}
