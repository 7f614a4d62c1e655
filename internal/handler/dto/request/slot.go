package request

import (
	"parking-reserve/internal/domain/slot"
)

type CreateSlotRequest struct {
	Row int `json:"row" binding:"required,min=1"`
	Col int `json:"col" binding:"required,min=1"`
}

func (r CreateSlotRequest) ToDomain() (*slot.Slot, error) {
	position, err := slot.NewPosition(r.Row, r.Col)
	if err != nil {
		return nil, err
	}

	return slot.NewSlot(position), nil
}

type OverrideSlotStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListSlotsQuery struct {
	Status *string `form:"status"`
	Row    *int32  `form:"row"`
	Limit  int32   `form:"limit,default=50"`
	Offset int32   `form:"offset,default=0"`
}

type AvailabilityQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}
