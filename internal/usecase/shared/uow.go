package shared

import (
	"context"
	"time"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/internal/domain/review"
	"crafty-kid/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Seats() SeatRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ScheduleByID(ctx context.Context, id uuid.UUID) (*ScheduleSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	HasActiveBooking(ctx context.Context, scheduleID, parentID uuid.UUID) (bool, error)
	HasReview(ctx context.Context, parentID uuid.UUID, targetType string, targetID uuid.UUID) (bool, error)
	ReviewByID(ctx context.Context, id uuid.UUID) (*ReviewSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	SetPaymentIntent(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, intentID string) error
	// MarkPaid transitions reserved → paid and stores the receipt URL.
	// Returns false when the booking was not in reserved state.
	MarkPaid(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, receiptURL *string) (bool, error)
	// TransitionStatus updates only when the current status matches from, so
	// racing writers (explicit cancel vs. webhook) degrade to a no-op.
	TransitionStatus(ctx context.Context, tx db.DBTX, bookingID uuid.UUID, from, to booking.Status) (bool, error)
}

type SeatRepository interface {
	// Claim decrements seats_remaining once, atomically, never below zero.
	Claim(ctx context.Context, tx db.DBTX, scheduleID uuid.UUID) error
	// Release increments seats_remaining once, capped at seats_total.
	Release(ctx context.Context, tx db.DBTX, scheduleID uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error)
	// Flag marks a review as flagged; returns false when already flagged or missing.
	Flag(ctx context.Context, tx db.DBTX, reviewID uuid.UUID) (bool, error)
}

type RatingStatsRepository interface {
	RecalcInstructorRatingStats(ctx context.Context, tx db.DBTX, instructorID uuid.UUID) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

// Minimal snapshots for command read operations

type ScheduleSnapshot struct {
	ID             uuid.UUID
	ClassID        uuid.UUID
	InstructorID   uuid.UUID
	PriceCents     int64
	StartsAt       time.Time
	EndsAt         time.Time
	SeatsTotal     int32
	SeatsRemaining int32
}

type BookingSnapshot struct {
	ID               uuid.UUID
	ScheduleID       uuid.UUID
	ParentID         uuid.UUID
	ClassID          uuid.UUID
	InstructorID     uuid.UUID
	VenueID          uuid.UUID
	Status           string
	AmountCents      int64
	PaymentIntentID  *string
	ScheduleStartsAt time.Time
}

type ReviewSnapshot struct {
	ID         uuid.UUID
	ParentID   uuid.UUID
	TargetType string
	TargetID   uuid.UUID
	Flagged    bool
}
