package response

import (
	"time"

	"parking-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	Row       int32     `json:"row"`
	Col       int32     `json:"col"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SlotListResponse struct {
	Items []*SlotResponse `json:"items"`
	Total int64           `json:"total"`
}

type AvailabilityResponse struct {
	SlotID    uuid.UUID `json:"slotId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

func FromSlotView(view *queries.SlotView) *SlotResponse {
	var resp SlotResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromSlotListResult(result *queries.SlotListResult) *SlotListResponse {
	items := make([]*SlotResponse, len(result.Items))
	for i, view := range result.Items {
		items[i] = FromSlotView(view)
	}
	return &SlotListResponse{
		Items: items,
		Total: result.Total,
	}
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
