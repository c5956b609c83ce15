package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/shared"
)

type WebhookCommands interface {
	// HandleEvent verifies the payload signature and reconciles booking state
	// with the gateway's view. Verification failures are returned to the
	// caller; everything after a valid signature is absorbed so the gateway
	// never retries events we have already made a decision about.
	HandleEvent(ctx context.Context, payload []byte, signatureHeader string) error
}

type webhookUseCaseImpl struct {
	uow      shared.UnitOfWork
	verifier shared.WebhookVerifier
}

func NewWebhookUseCase(uow shared.UnitOfWork, verifier shared.WebhookVerifier) WebhookCommands {
	return &webhookUseCaseImpl{
		uow:      uow,
		verifier: verifier,
	}
}

func (uc *webhookUseCaseImpl) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	if uc.verifier == nil {
		return errs.ErrGatewayNotConfigured
	}

	event, err := uc.verifier.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	switch event.Kind {
	case shared.EventPaymentSucceeded:
		return uc.handleSucceeded(ctx, event)
	case shared.EventPaymentFailed:
		// The booking stays RESERVED and keeps its seat; the parent can retry
		// payment against the same intent.
		slog.Info("payment failed, booking left reserved",
			"intent_id", event.Intent.ID, "failure", strOrEmpty(event.Intent.FailureMsg))
		return nil
	case shared.EventPaymentCanceled:
		return uc.handleCanceled(ctx, event)
	case shared.EventUnhandled:
		slog.Debug("ignoring unhandled webhook event", "event_type", event.RawType)
		return nil
	default:
		slog.Warn("webhook event kind missing a handler", "kind", string(event.Kind), "event_type", event.RawType)
		return nil
	}
}

func (uc *webhookUseCaseImpl) handleSucceeded(ctx context.Context, event *shared.PaymentEvent) error {
	bookingID, ok := uc.bookingIDFor(event)
	if !ok {
		return nil
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		marked, err := tx.Bookings().MarkPaid(ctx, tx.DB(), bookingID, event.Intent.ReceiptURL)
		if err != nil {
			return err
		}
		if !marked {
			// No RESERVED row matched: the booking is unknown, already
			// cancelled, or this event was delivered twice. Nothing to
			// reconcile either way.
			slog.Info("stale payment success event ignored",
				"booking_id", bookingID, "intent_id", event.Intent.ID)
		}
		return nil
	})
}

func (uc *webhookUseCaseImpl) handleCanceled(ctx context.Context, event *shared.PaymentEvent) error {
	bookingID, ok := uc.bookingIDFor(event)
	if !ok {
		return nil
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		transitioned, err := tx.Bookings().TransitionStatus(ctx, tx.DB(), bookingID, booking.StatusReserved, booking.StatusCancelled)
		if err != nil {
			return err
		}
		if !transitioned {
			slog.Info("stale payment cancel event ignored",
				"booking_id", bookingID, "intent_id", event.Intent.ID)
			return nil
		}

		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		return tx.Seats().Release(ctx, tx.DB(), snap.ScheduleID)
	})
}

// bookingIDFor pulls the booking correlation out of the intent metadata.
// Intents without it were not created by this service; log and ignore.
func (uc *webhookUseCaseImpl) bookingIDFor(event *shared.PaymentEvent) (uuid.UUID, bool) {
	if event.Intent.BookingID == nil {
		slog.Warn("webhook event without booking metadata ignored",
			"intent_id", event.Intent.ID, "event_type", event.RawType)
		return uuid.Nil, false
	}
	return *event.Intent.BookingID, true
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
