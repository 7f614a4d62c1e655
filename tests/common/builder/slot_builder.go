//go:build unit || e2e

package builder

import (
	"time"

	domslot "parking-reserve/internal/domain/slot"
	reqdto "parking-reserve/internal/handler/dto/request"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/usecase/queries"
	"parking-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SlotBuilder struct {
	ID        uuid.UUID
	Row       int
	Col       int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSlotBuilder() *SlotBuilder {
	now := time.Now()
	return &SlotBuilder{
		ID:        uuid.New(),
		Row:       1,
		Col:       1,
		Status:    domslot.StatusAvailable.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *SlotBuilder) BuildDomain() (*domslot.Slot, error) {
	position, err := domslot.NewPosition(b.Row, b.Col)
	if err != nil {
		return nil, err
	}
	status, err := domslot.NewStatus(b.Status)
	if err != nil {
		return nil, err
	}
	return domslot.ReconstructSlot(b.ID, position, status, b.CreatedAt, b.UpdatedAt), nil
}

func (b *SlotBuilder) BuildInfra() sqlc.Slots {
	return sqlc.Slots{
		ID:        b.ID,
		RowNumber: int32(b.Row),
		ColNumber: int32(b.Col),
		Status:    b.Status,
		CreatedAt: pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt: pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}

func (b *SlotBuilder) BuildSnapshot() *shared.SlotSnapshot {
	return &shared.SlotSnapshot{
		ID:     b.ID,
		Row:    b.Row,
		Col:    b.Col,
		Status: b.Status,
	}
}

func (b *SlotBuilder) BuildView() *queries.SlotView {
	return &queries.SlotView{
		ID:        b.ID,
		Row:       int32(b.Row),
		Col:       int32(b.Col),
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (b *SlotBuilder) BuildCreateRequestDTO() reqdto.CreateSlotRequest {
	return reqdto.CreateSlotRequest{
		Row: b.Row,
		Col: b.Col,
	}
}
