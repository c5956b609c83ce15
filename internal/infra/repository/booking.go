package repository

import (
	"context"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/internal/infra"
	"crafty-kid/internal/infra/db"
	"crafty-kid/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingQuery = `
INSERT INTO bookings (id, schedule_id, parent_id, amount_cents, status, payment_intent_id, receipt_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

// Create relies on the partial unique index over (schedule_id, parent_id)
// WHERE status IN ('reserved','paid') to enforce one active booking per pair.
func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingQuery,
		b.ID(),
		b.ScheduleID(),
		b.ParentID(),
		b.Amount().Cents(),
		b.Status().String(),
		pgconv.StringPtrToPgtype(b.PaymentIntentID()),
		pgconv.StringPtrToPgtype(b.ReceiptURL()),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("active booking already exists for schedule", err, infra.KindDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("schedule or parent does not exist", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

const setPaymentIntentQuery = `
UPDATE bookings
SET payment_intent_id = $2, updated_at = now()
WHERE id = $1`

func (r *BookingRepository) SetPaymentIntent(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, intentID string) error {
	tag, err := tx.Exec(ctx, setPaymentIntentQuery, bookingID, intentID)
	if err != nil {
		return infra.WrapRepoErr("failed to set payment intent", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const markPaidQuery = `
UPDATE bookings
SET status = 'paid', receipt_url = COALESCE($2, receipt_url), updated_at = now()
WHERE id = $1 AND status = 'reserved'`

func (r *BookingRepository) MarkPaid(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, receiptURL *string) (bool, error) {
	tag, err := tx.Exec(ctx, markPaidQuery, bookingID, pgconv.StringPtrToPgtype(receiptURL))
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark booking paid", err)
	}
	return tag.RowsAffected() > 0, nil
}

const transitionStatusQuery = `
UPDATE bookings
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2`

// TransitionStatus is the guarded update behind every cancel path: the WHERE
// clause on the current status makes the second of two racing writers a no-op.
func (r *BookingRepository) TransitionStatus(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, from, to booking.Status) (bool, error) {
	if !booking.CanTransition(from, to) {
		return false, infra.WrapRepoErr("disallowed status transition", booking.ErrInvalidTransition, infra.KindConflict)
	}
	tag, err := tx.Exec(ctx, transitionStatusQuery, bookingID, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition booking status", err)
	}
	return tag.RowsAffected() > 0, nil
}
