package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrBookingNotEligible = errors.New("booking is not eligible for review")

type Review struct {
	id         uuid.UUID
	parentID   uuid.UUID
	targetType TargetType
	targetID   uuid.UUID
	bookingID  *uuid.UUID
	rating     Rating
	title      Title
	body       Body
	verified   bool
	flagged    bool
	createdAt  time.Time
}

// NewReview builds a review. verified is true only when the caller validated a
// paid booking backing it; flagged reviews exist only via moderation.
func NewReview(parentID uuid.UUID, targetType TargetType, targetID uuid.UUID, bookingID *uuid.UUID, ratingValue int, titleText, bodyText string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	title, err := NewTitle(titleText)
	if err != nil {
		return nil, err
	}

	body, err := NewBody(bodyText)
	if err != nil {
		return nil, err
	}

	return &Review{
		id:         uuid.New(),
		parentID:   parentID,
		targetType: targetType,
		targetID:   targetID,
		bookingID:  bookingID,
		rating:     rating,
		title:      title,
		body:       body,
		verified:   bookingID != nil,
		createdAt:  now,
	}, nil
}

func (r *Review) ID() uuid.UUID          { return r.id }
func (r *Review) ParentID() uuid.UUID    { return r.parentID }
func (r *Review) TargetType() TargetType { return r.targetType }
func (r *Review) TargetID() uuid.UUID    { return r.targetID }
func (r *Review) BookingID() *uuid.UUID  { return r.bookingID }
func (r *Review) Rating() Rating         { return r.rating }
func (r *Review) Title() Title           { return r.title }
func (r *Review) Body() Body             { return r.body }
func (r *Review) Verified() bool         { return r.verified }
func (r *Review) Flagged() bool          { return r.flagged }
func (r *Review) CreatedAt() time.Time   { return r.createdAt }
