package shared

import (
	"context"

	"github.com/google/uuid"
)

// Payment gateway intent statuses this service cares about. The gateway owns
// payment state; the booking row owns business state.
const (
	IntentStatusRequiresPaymentMethod = "requires_payment_method"
	IntentStatusRequiresConfirmation  = "requires_confirmation"
	IntentStatusSucceeded             = "succeeded"
	IntentStatusCanceled              = "canceled"
)

type GatewayIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	BookingID    *uuid.UUID // from intent metadata; nil for foreign intents
	ParentID     *uuid.UUID
	ReceiptURL   *string
	FailureMsg   *string
}

// Open means the intent can still be confirmed by the client, so EnsureIntent
// must reuse it instead of creating a duplicate.
func (i *GatewayIntent) Open() bool {
	return i.Status == IntentStatusRequiresPaymentMethod || i.Status == IntentStatusRequiresConfirmation
}

type CreateIntentParams struct {
	AmountCents int64
	Currency    string
	BookingID   uuid.UUID
	ParentID    uuid.UUID
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*GatewayIntent, error)
	GetIntent(ctx context.Context, intentID string) (*GatewayIntent, error)
	// Refund refunds the full amountCents against the intent's charge.
	Refund(ctx context.Context, intentID string, amountCents int64) error
}

type PaymentEventKind string

// Closed variant set for webhook dispatch: adding a gateway event type means
// adding a variant here and a case to every switch over it.
const (
	EventPaymentSucceeded PaymentEventKind = "payment_succeeded"
	EventPaymentFailed    PaymentEventKind = "payment_failed"
	EventPaymentCanceled  PaymentEventKind = "payment_canceled"
	EventUnhandled        PaymentEventKind = "unhandled"
)

type PaymentEvent struct {
	Kind    PaymentEventKind
	Intent  GatewayIntent
	RawType string // gateway's event type string, kept for Unhandled logging
}

// WebhookVerifier authenticates a raw webhook payload against its signature
// header and fails closed on any mismatch.
type WebhookVerifier interface {
	VerifyEvent(payload []byte, signatureHeader string) (*PaymentEvent, error)
}
