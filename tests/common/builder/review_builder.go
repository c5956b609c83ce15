//go:build unit || e2e

package builder

import (
	"time"

	domreview "crafty-kid/internal/domain/review"
	reqdto "crafty-kid/internal/handler/dto/request"
	"crafty-kid/internal/usecase/queries"
	"crafty-kid/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	ParentID   uuid.UUID
	TargetType string
	TargetID   uuid.UUID
	BookingID  *uuid.UUID
	Rating     int
	Title      string
	Body       string
	CreatedAt  time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	bookingID := uuid.New()
	return &ReviewBuilder{
		ParentID:   uuid.New(),
		TargetType: "class",
		TargetID:   uuid.New(),
		BookingID:  &bookingID,
		Rating:     5,
		Title:      "Wonderful class",
		Body:       "My daughter loved every minute of it.",
		CreatedAt:  time.Now(),
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(r.ParentID, domreview.TargetType(r.TargetType), r.TargetID, r.BookingID, r.Rating, r.Title, r.Body, r.CreatedAt)
}

func (r *ReviewBuilder) BuildView() *queries.ReviewView {
	return &queries.ReviewView{
		ID:         uuid.New(),
		ParentID:   r.ParentID,
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		Rating:     int32(r.Rating),
		Title:      r.Title,
		Body:       r.Body,
		Verified:   r.BookingID != nil,
		CreatedAt:  r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildSnapshot() *shared.ReviewSnapshot {
	return &shared.ReviewSnapshot{
		ID:         uuid.New(),
		ParentID:   r.ParentID,
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		Flagged:    false,
	}
}

func (r *ReviewBuilder) BuildSubmitRequestDTO() reqdto.SubmitReviewRequest {
	return reqdto.SubmitReviewRequest{
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		BookingID:  r.BookingID,
		Rating:     r.Rating,
		Title:      r.Title,
		Body:       r.Body,
	}
}

// Fluent builder methods
func (r *ReviewBuilder) WithParentID(parentID uuid.UUID) *ReviewBuilder {
	r.ParentID = parentID
	return r
}

func (r *ReviewBuilder) WithTargetType(targetType string) *ReviewBuilder {
	r.TargetType = targetType
	return r
}

func (r *ReviewBuilder) WithTargetID(targetID uuid.UUID) *ReviewBuilder {
	r.TargetID = targetID
	return r
}

func (r *ReviewBuilder) WithBookingID(bookingID *uuid.UUID) *ReviewBuilder {
	r.BookingID = bookingID
	return r
}

func (r *ReviewBuilder) WithoutBooking() *ReviewBuilder {
	r.BookingID = nil
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithTitle(title string) *ReviewBuilder {
	r.Title = title
	return r
}

func (r *ReviewBuilder) WithBody(body string) *ReviewBuilder {
	r.Body = body
	return r
}

func (r *ReviewBuilder) WithCreatedAt(createdAt time.Time) *ReviewBuilder {
	r.CreatedAt = createdAt
	return r
}

func (r *ReviewBuilder) AsPoorRating() *ReviewBuilder {
	r.Rating = 1
	r.Title = "Disappointing"
	r.Body = "Not what we expected at all."
	return r
}
