package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrNotOwned          = errors.New("booking not owned by requester")
)

type Booking struct {
	id              uuid.UUID
	scheduleID      uuid.UUID
	parentID        uuid.UUID
	amount          Money
	status          Status
	paymentIntentID *string
	receiptURL      *string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewBooking claims a seat: the price is snapshotted from the class at creation
// time and never re-resolved later.
func NewBooking(scheduleID, parentID uuid.UUID, amount Money) *Booking {
	return &Booking{
		id:         uuid.New(),
		scheduleID: scheduleID,
		parentID:   parentID,
		amount:     amount,
		status:     StatusReserved,
	}
}

func ReconstructBooking(
	id, scheduleID, parentID uuid.UUID,
	amount Money,
	status Status,
	paymentIntentID, receiptURL *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		scheduleID:      scheduleID,
		parentID:        parentID,
		amount:          amount,
		status:          status,
		paymentIntentID: paymentIntentID,
		receiptURL:      receiptURL,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ValidateCancellation checks everything the cancel operation needs before any
// side effect: ownership, re-cancel, and the 24h window against the schedule
// start. Refunded counts as already cancelled for re-cancel purposes.
func (b *Booking) ValidateCancellation(requestedBy uuid.UUID, scheduleStartsAt, now time.Time) error {
	if b.parentID != requestedBy {
		return ErrNotOwned
	}
	if b.status.IsTerminal() {
		return ErrAlreadyCancelled
	}
	return ValidateCancellationAt(scheduleStartsAt, now)
}

// CancellationTarget is the terminal status a cancel should reach given the
// refund outcome. Paid money that came back means refunded; everything else
// ends as cancelled.
func (b *Booking) CancellationTarget(refunded bool) Status {
	if b.status == StatusPaid && refunded {
		return StatusRefunded
	}
	return StatusCancelled
}

func (b *Booking) IsPayable() bool {
	return b.status == StatusReserved
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) ScheduleID() uuid.UUID    { return b.scheduleID }
func (b *Booking) ParentID() uuid.UUID      { return b.parentID }
func (b *Booking) Amount() Money            { return b.amount }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) PaymentIntentID() *string { return b.paymentIntentID }
func (b *Booking) ReceiptURL() *string      { return b.receiptURL }
func (b *Booking) CreatedAt() time.Time     { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time     { return b.updatedAt }
