package request

import (
	"crafty-kid/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ClassID    uuid.UUID `json:"class_id" binding:"required"`
	ScheduleID uuid.UUID `json:"schedule_id" binding:"required"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ClassID:    r.ClassID,
		ScheduleID: r.ScheduleID,
	}
}
