package response

import (
	"time"

	"parking-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	SlotID     uuid.UUID `json:"slotId"`
	SlotRow    int32     `json:"slotRow"`
	SlotCol    int32     `json:"slotCol"`
	UserID     uuid.UUID `json:"userId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"priceCents"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID         uuid.UUID `json:"id"`
	SlotID     uuid.UUID `json:"slotId"`
	SlotRow    int32     `json:"slotRow"`
	SlotCol    int32     `json:"slotCol"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"priceCents"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingListItems(items []*queries.BookingListItem) []*BookingListResponse {
	result := make([]*BookingListResponse, len(items))
	for i, item := range items {
		var resp BookingListResponse
		_ = copier.Copy(&resp, item)
		result[i] = &resp
	}
	return result
}
