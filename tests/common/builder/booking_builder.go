//go:build unit || e2e

package builder

import (
	"time"

	"crafty-kid/internal/domain/booking"
	reqdto "crafty-kid/internal/handler/dto/request"
	"crafty-kid/internal/usecase/queries"
	"crafty-kid/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID               uuid.UUID
	ScheduleID       uuid.UUID
	ParentID         uuid.UUID
	ClassID          uuid.UUID
	InstructorID     uuid.UUID
	VenueID          uuid.UUID
	AmountCents      int64
	Status           string
	PaymentIntentID  *string
	ReceiptURL       *string
	ScheduleStartsAt time.Time
	CreatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		ID:               uuid.New(),
		ScheduleID:       uuid.New(),
		ParentID:         uuid.New(),
		ClassID:          uuid.New(),
		InstructorID:     uuid.New(),
		VenueID:          uuid.New(),
		AmountCents:      4500,
		Status:           "reserved",
		ScheduleStartsAt: now.Add(72 * time.Hour),
		CreatedAt:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	amount, err := booking.NewMoney(b.AmountCents)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		b.ID, b.ScheduleID, b.ParentID,
		amount,
		booking.Status(b.Status),
		b.PaymentIntentID, b.ReceiptURL,
		b.CreatedAt, b.CreatedAt,
	), nil
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:               b.ID,
		ScheduleID:       b.ScheduleID,
		ParentID:         b.ParentID,
		ClassID:          b.ClassID,
		InstructorID:     b.InstructorID,
		VenueID:          b.VenueID,
		Status:           b.Status,
		AmountCents:      b.AmountCents,
		PaymentIntentID:  b.PaymentIntentID,
		ScheduleStartsAt: b.ScheduleStartsAt,
	}
}

func (b *BookingBuilder) BuildScheduleSnapshot() *shared.ScheduleSnapshot {
	return &shared.ScheduleSnapshot{
		ID:             b.ScheduleID,
		ClassID:        b.ClassID,
		InstructorID:   b.InstructorID,
		PriceCents:     b.AmountCents,
		StartsAt:       b.ScheduleStartsAt,
		EndsAt:         b.ScheduleStartsAt.Add(2 * time.Hour),
		SeatsTotal:     8,
		SeatsRemaining: 3,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              b.ID,
		ParentID:        b.ParentID,
		Status:          b.Status,
		AmountCents:     b.AmountCents,
		PaymentIntentID: b.PaymentIntentID,
		ReceiptURL:      b.ReceiptURL,
		ClassID:         b.ClassID,
		ClassTitle:      "Pottery for Kids",
		InstructorName:  "Mori Hana",
		VenueName:       "Downtown Studio",
		StartsAt:        b.ScheduleStartsAt,
		EndsAt:          b.ScheduleStartsAt.Add(2 * time.Hour),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ClassID:    b.ClassID,
		ScheduleID: b.ScheduleID,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithParentID(parentID uuid.UUID) *BookingBuilder {
	b.ParentID = parentID
	return b
}

func (b *BookingBuilder) WithScheduleID(scheduleID uuid.UUID) *BookingBuilder {
	b.ScheduleID = scheduleID
	return b
}

func (b *BookingBuilder) WithAmountCents(cents int64) *BookingBuilder {
	b.AmountCents = cents
	return b
}

func (b *BookingBuilder) WithScheduleStartsAt(t time.Time) *BookingBuilder {
	b.ScheduleStartsAt = t
	return b
}

func (b *BookingBuilder) AsPaid() *BookingBuilder {
	b.Status = "paid"
	intentID := "pi_" + uuid.NewString()[:8]
	b.PaymentIntentID = &intentID
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = "cancelled"
	return b
}

func (b *BookingBuilder) AsRefunded() *BookingBuilder {
	b.Status = "refunded"
	return b
}
