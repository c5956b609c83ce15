package queries

import (
	"context"
	"time"

	"crafty-kid/internal/infra"
	"crafty-kid/internal/pkg/errs"

	"github.com/google/uuid"
)

// BookingView is the read-optimized booking detail with embedded class,
// instructor, venue and schedule summaries.
type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	ParentID        uuid.UUID  `json:"parent_id"`
	Status          string     `json:"status"`
	AmountCents     int64      `json:"amount_cents"`
	PaymentIntentID *string    `json:"payment_intent_id,omitempty"`
	ReceiptURL      *string    `json:"receipt_url,omitempty"`
	ClassID         uuid.UUID  `json:"class_id"`
	ClassTitle      string     `json:"class_title"`
	InstructorName  string     `json:"instructor_name"`
	VenueName       string     `json:"venue_name"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          time.Time  `json:"ends_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// FindByParent returns the parent's bookings newest first.
	FindByParent(ctx context.Context, parentID uuid.UUID) ([]*BookingView, error)
}

type BookingQueries interface {
	// GetOwned hides other parents' bookings behind not-found.
	GetOwned(ctx context.Context, id, parentID uuid.UUID) (*BookingView, error)
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetOwned(ctx context.Context, id, parentID uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, err
	}
	if view.ParentID != parentID {
		return nil, errs.ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByParent(ctx context.Context, parentID uuid.UUID) ([]*BookingView, error) {
	return q.store.FindByParent(ctx, parentID)
}
