package converter

import (
	"parking-reserve/internal/domain/slot"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/pkg/pgconv"
)

func SlotToCreateParams(s *slot.Slot) sqlc.CreateSlotParams {
	return sqlc.CreateSlotParams{
		ID:        s.ID(),
		RowNumber: pgconv.IntToInt32(s.Position().Row()),
		ColNumber: pgconv.IntToInt32(s.Position().Col()),
		Status:    s.Status().String(),
	}
}
