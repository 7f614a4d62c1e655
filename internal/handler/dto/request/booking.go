package request

import (
	"time"

	"parking-reserve/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID    uuid.UUID `json:"slot_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (r CreateBookingRequest) ToWindow() (booking.TimeWindow, error) {
	return booking.NewTimeWindow(r.StartTime, r.EndTime)
}

type ListBookingsQuery struct {
	Limit  int32 `form:"limit,default=50"`
	Offset int32 `form:"offset,default=0"`
}
