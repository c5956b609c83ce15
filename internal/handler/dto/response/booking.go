package response

import (
	"time"

	"github.com/google/uuid"

	"crafty-kid/internal/domain/booking"
	"crafty-kid/internal/usecase/commands"
	"crafty-kid/internal/usecase/queries"
)

type BookingClassResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor"`
	Venue      string    `json:"venue"`
}

type BookingScheduleResponse struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

type BookingResponse struct {
	ID              uuid.UUID               `json:"id"`
	Status          string                  `json:"status"`
	AmountCents     int64                   `json:"amountCents"`
	PaymentIntentID *string                 `json:"paymentIntentId,omitempty"`
	ReceiptURL      *string                 `json:"receiptUrl,omitempty"`
	Class           BookingClassResponse    `json:"class"`
	Schedule        BookingScheduleResponse `json:"schedule"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              v.ID,
		Status:          v.Status,
		AmountCents:     v.AmountCents,
		PaymentIntentID: v.PaymentIntentID,
		ReceiptURL:      v.ReceiptURL,
		Class: BookingClassResponse{
			ID:         v.ClassID,
			Title:      v.ClassTitle,
			Instructor: v.InstructorName,
			Venue:      v.VenueName,
		},
		Schedule: BookingScheduleResponse{
			StartsAt: v.StartsAt,
			EndsAt:   v.EndsAt,
		},
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func FromBookingList(items []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(items))
	for i, it := range items {
		res[i] = FromBookingView(it)
	}
	return res
}

type RefundResponse struct {
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

type CancelBookingResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Refund  RefundResponse `json:"refund"`
}

func FromCancelResult(r *commands.CancelBookingResult) *CancelBookingResponse {
	msg := "Booking cancelled"
	if r.Refund.Status == booking.RefundFull {
		msg = "Booking cancelled and payment refunded"
	}
	return &CancelBookingResponse{
		Success: true,
		Message: msg,
		Refund: RefundResponse{
			Status: string(r.Refund.Status),
			Amount: r.Refund.AmountCents,
		},
	}
}
