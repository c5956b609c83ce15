package commands

import (
	"context"

	"github.com/google/uuid"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/internal/infra"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/shared"
)

const intentCurrency = "usd"

type EnsureIntentResult struct {
	IntentID     string
	ClientSecret string
	Status       string
	AmountCents  int64
	Reused       bool
}

type PaymentCommands interface {
	// EnsureIntent returns a confirmable payment intent for a RESERVED
	// booking, reusing the stored one while it is still open. Safe to call
	// repeatedly; at most one open intent exists per booking.
	EnsureIntent(ctx context.Context, bookingID, parentID uuid.UUID) (*EnsureIntentResult, error)
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	gateway shared.PaymentGateway
}

func NewPaymentUseCase(uow shared.UnitOfWork, gateway shared.PaymentGateway) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:     uow,
		gateway: gateway,
	}
}

func (uc *paymentUseCaseImpl) EnsureIntent(ctx context.Context, bookingID, parentID uuid.UUID) (*EnsureIntentResult, error) {
	if uc.gateway == nil {
		return nil, errs.ErrGatewayNotConfigured
	}

	snap, err := uc.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap.ParentID != parentID {
		return nil, errs.ErrBookingNotFound
	}
	if booking.Status(snap.Status) != booking.StatusReserved {
		return nil, errs.ErrNotPayable
	}

	if snap.PaymentIntentID != nil {
		intent, err := uc.gateway.GetIntent(ctx, *snap.PaymentIntentID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrGatewayUnavailable)
		}
		if intent.Open() {
			return &EnsureIntentResult{
				IntentID:     intent.ID,
				ClientSecret: intent.ClientSecret,
				Status:       intent.Status,
				AmountCents:  intent.AmountCents,
				Reused:       true,
			}, nil
		}
		// The stored intent is dead (canceled or consumed while the booking
		// stayed RESERVED); fall through and mint a fresh one.
	}

	intent, err := uc.gateway.CreateIntent(ctx, shared.CreateIntentParams{
		AmountCents: snap.AmountCents,
		Currency:    intentCurrency,
		BookingID:   snap.ID,
		ParentID:    snap.ParentID,
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrGatewayUnavailable)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().SetPaymentIntent(ctx, tx.DB(), bookingID, intent.ID)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &EnsureIntentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
		AmountCents:  intent.AmountCents,
	}, nil
}
