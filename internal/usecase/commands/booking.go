package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/internal/infra"
	"crafty-kid/internal/pkg/clock"
	"crafty-kid/internal/pkg/errs"
	"crafty-kid/internal/usecase/queries"
	"crafty-kid/internal/usecase/shared"
)

type CreateBookingRequest struct {
	ClassID    uuid.UUID
	ScheduleID uuid.UUID
}

type CreateBookingResult struct {
	Booking *queries.BookingView
}

type CancelBookingResult struct {
	BookingID uuid.UUID
	Status    booking.Status
	Refund    booking.RefundResult
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, parentID uuid.UUID) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, bookingID, parentID uuid.UUID) (*CancelBookingResult, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	gateway        shared.PaymentGateway
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:            uow,
		gateway:        gateway,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

// CreateBooking claims a seat and creates a RESERVED booking in one
// transaction. The seat decrement and the duplicate-booking unique index are
// both conditional writes, so concurrent requests for the last seat or the
// same (schedule, parent) pair cannot both succeed.
func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest, parentID uuid.UUID) (*CreateBookingResult, error) {
	var bookingID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sched, err := tx.Reads().ScheduleByID(ctx, req.ScheduleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrScheduleNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if sched.ClassID != req.ClassID {
			return errs.ErrClassMismatch
		}

		hasActive, err := tx.Reads().HasActiveBooking(ctx, req.ScheduleID, parentID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if hasActive {
			return errs.ErrDuplicateBooking
		}

		if err := tx.Seats().Claim(ctx, tx.DB(), req.ScheduleID); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrNoSeatsAvailable
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		amount, err := booking.NewMoney(sched.PriceCents)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		id, err := tx.Bookings().Create(ctx, tx.DB(), booking.NewBooking(req.ScheduleID, parentID, amount))
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrDuplicateBooking
			}
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.ErrScheduleNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		bookingID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the full view from the read store
	view, err := uc.bookingQueries.GetOwned(ctx, bookingID, parentID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CreateBookingResult{Booking: view}, nil
}

// CancelBooking validates ownership and the cancellation window, refunds a
// succeeded payment if there is one, then flips the status with a
// status-preconditioned update and releases the seat. A webhook racing this
// cancel loses on the precondition and degrades to AlreadyCancelled.
func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID, parentID uuid.UUID) (*CancelBookingResult, error) {
	snap, err := uc.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	amount, err := booking.NewMoney(snap.AmountCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	agg := booking.ReconstructBooking(
		snap.ID, snap.ScheduleID, snap.ParentID,
		amount, booking.Status(snap.Status),
		snap.PaymentIntentID, nil,
		uc.clock.Now(), uc.clock.Now(),
	)

	if err := agg.ValidateCancellation(parentID, snap.ScheduleStartsAt, uc.clock.Now()); err != nil {
		switch {
		case errors.Is(err, booking.ErrNotOwned):
			// Hide other parents' bookings behind not-found
			return nil, errs.ErrBookingNotFound
		case errors.Is(err, booking.ErrAlreadyCancelled):
			return nil, errs.ErrAlreadyCancelled
		case errors.Is(err, booking.ErrWindowClosed):
			return nil, errs.ErrCancellationWindowClosed
		default:
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
	}

	refund := uc.refundIfPaid(ctx, agg)
	target := agg.CancellationTarget(refund.Status == booking.RefundFull)

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		transitioned, err := tx.Bookings().TransitionStatus(ctx, tx.DB(), bookingID, agg.Status(), target)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !transitioned {
			// Another writer already moved the booking out of its state
			return errs.ErrAlreadyCancelled
		}
		return tx.Seats().Release(ctx, tx.DB(), snap.ScheduleID)
	})
	if err != nil {
		return nil, err
	}

	return &CancelBookingResult{
		BookingID: bookingID,
		Status:    target,
		Refund:    refund,
	}, nil
}

// refundIfPaid attempts a full refund for a PAID booking with a succeeded
// payment intent. A gateway failure here is deliberately non-fatal: the
// cancellation still proceeds, the booking just ends as CANCELLED instead of
// REFUNDED so the missing refund stays visible for manual follow-up.
func (uc *bookingUseCaseImpl) refundIfPaid(ctx context.Context, agg *booking.Booking) booking.RefundResult {
	none := booking.RefundResult{Status: booking.RefundNone}

	if agg.Status() != booking.StatusPaid || agg.PaymentIntentID() == nil || uc.gateway == nil {
		return none
	}

	intentID := *agg.PaymentIntentID()
	intent, err := uc.gateway.GetIntent(ctx, intentID)
	if err != nil {
		slog.Warn("failed to look up payment intent during cancellation",
			"booking_id", agg.ID(), "intent_id", intentID, "error", err.Error())
		return none
	}
	if intent.Status != shared.IntentStatusSucceeded {
		return none
	}

	if err := uc.gateway.Refund(ctx, intentID, agg.Amount().Cents()); err != nil {
		slog.Warn("refund failed during cancellation",
			"booking_id", agg.ID(), "intent_id", intentID, "error", err.Error())
		return none
	}

	return booking.RefundResult{Status: booking.RefundFull, AmountCents: agg.Amount().Cents()}
}
