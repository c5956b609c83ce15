package request

import (
	"crafty-kid/internal/usecase/commands"

	"github.com/google/uuid"
)

type SubmitReviewRequest struct {
	TargetType string     `json:"target_type" binding:"required,oneof=class instructor venue"`
	TargetID   uuid.UUID  `json:"target_id" binding:"required"`
	BookingID  *uuid.UUID `json:"booking_id,omitempty"`
	Rating     int        `json:"rating" binding:"required,min=1,max=5"`
	Title      string     `json:"title" binding:"required,max=120"`
	Body       string     `json:"body" binding:"required,max=2000"`
}

func (r SubmitReviewRequest) ToCommand() commands.SubmitReviewRequest {
	return commands.SubmitReviewRequest{
		TargetType: r.TargetType,
		TargetID:   r.TargetID,
		BookingID:  r.BookingID,
		Rating:     r.Rating,
		Title:      r.Title,
		Body:       r.Body,
	}
}
