package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"crafty-kid/internal/infra"
	"crafty-kid/internal/infra/db"
	"crafty-kid/internal/pkg/pgconv"
	"crafty-kid/internal/usecase/shared"
)

const scheduleSnapshotQuery = `
SELECT cs.id, cs.class_id, c.instructor_id, cs.price_cents, cs.starts_at, cs.ends_at,
       cs.seats_total, cs.seats_remaining
FROM class_schedules cs
JOIN classes c ON c.id = cs.class_id
WHERE cs.id = $1`

const bookingSnapshotQuery = `
SELECT b.id, b.schedule_id, b.parent_id, cs.class_id, c.instructor_id, c.venue_id,
       b.status, b.amount_cents, b.payment_intent_id, cs.starts_at
FROM bookings b
JOIN class_schedules cs ON cs.id = b.schedule_id
JOIN classes c ON c.id = cs.class_id
WHERE b.id = $1`

// Active means holding a seat: terminal bookings free the pair for re-booking.
const hasActiveBookingQuery = `
SELECT EXISTS (
	SELECT 1 FROM bookings
	WHERE schedule_id = $1 AND parent_id = $2 AND status IN ('reserved', 'paid')
)`

const hasReviewQuery = `
SELECT EXISTS (
	SELECT 1 FROM reviews
	WHERE parent_id = $1 AND target_type = $2 AND target_id = $3
)`

const reviewSnapshotQuery = `
SELECT id, parent_id, target_type, target_id, flagged
FROM reviews
WHERE id = $1`

// CommandReads answers the point lookups command handlers need before they
// write. Bound to a pool for pre-checks or to a pgx.Tx for in-transaction use.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(db db.DBTX) *CommandReads {
	return &CommandReads{db: db}
}

func (r *CommandReads) ScheduleByID(ctx context.Context, id uuid.UUID) (*shared.ScheduleSnapshot, error) {
	var snap shared.ScheduleSnapshot
	err := r.db.QueryRow(ctx, scheduleSnapshotQuery, id).Scan(
		&snap.ID,
		&snap.ClassID,
		&snap.InstructorID,
		&snap.PriceCents,
		&snap.StartsAt,
		&snap.EndsAt,
		&snap.SeatsTotal,
		&snap.SeatsRemaining,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("schedule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read schedule snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap            shared.BookingSnapshot
		paymentIntentID pgtype.Text
	)
	err := r.db.QueryRow(ctx, bookingSnapshotQuery, id).Scan(
		&snap.ID,
		&snap.ScheduleID,
		&snap.ParentID,
		&snap.ClassID,
		&snap.InstructorID,
		&snap.VenueID,
		&snap.Status,
		&snap.AmountCents,
		&paymentIntentID,
		&snap.ScheduleStartsAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read booking snapshot", err)
	}
	snap.PaymentIntentID = pgconv.StringPtrFromPgtype(paymentIntentID)
	return &snap, nil
}

func (r *CommandReads) HasActiveBooking(ctx context.Context, scheduleID, parentID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, hasActiveBookingQuery, scheduleID, parentID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check active booking", err)
	}
	return exists, nil
}

func (r *CommandReads) HasReview(ctx context.Context, parentID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, hasReviewQuery, parentID, targetType, targetID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check existing review", err)
	}
	return exists, nil
}

func (r *CommandReads) ReviewByID(ctx context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	var snap shared.ReviewSnapshot
	err := r.db.QueryRow(ctx, reviewSnapshotQuery, id).Scan(
		&snap.ID,
		&snap.ParentID,
		&snap.TargetType,
		&snap.TargetID,
		&snap.Flagged,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read review snapshot", err)
	}
	return &snap, nil
}
