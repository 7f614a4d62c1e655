package repository

import (
	"context"
	"time"

	"parking-reserve/internal/domain/slot"
	"parking-reserve/internal/infra"
	"parking-reserve/internal/infra/repository/converter"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SlotWriteQueries interface {
	CreateSlot(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateSlotParams) (sqlc.Slots, error)
	UpdateSlotStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSlotStatusParams) (int64, error)
	MarkSlotsOccupiedAt(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error)
	DemoteStaleOccupiedAt(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error)
	ReleaseSlotsWithNoActiveBookings(ctx context.Context, db sqlc.DBTX, slotIds []uuid.UUID) (int64, error)
}

type SlotRepository struct {
	queries SlotWriteQueries
}

func NewSlotRepository(queries SlotWriteQueries) *SlotRepository {
	return &SlotRepository{
		queries: queries,
	}
}

func (r *SlotRepository) Create(ctx context.Context, tx sqlc.DBTX, s *slot.Slot) (uuid.UUID, error) {
	params := converter.SlotToCreateParams(s)

	row, err := r.queries.CreateSlot(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create slot", err)
	}

	return row.ID, nil
}

func (r *SlotRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, slotID uuid.UUID, status slot.Status) error {
	affected, err := r.queries.UpdateSlotStatus(ctx, tx, sqlc.UpdateSlotStatusParams{
		ID:     slotID,
		Status: status.String(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update slot status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *SlotRepository) MarkOccupiedAt(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error) {
	affected, err := r.queries.MarkSlotsOccupiedAt(ctx, tx, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark occupied slots", err)
	}

	return affected, nil
}

func (r *SlotRepository) DemoteStaleOccupiedAt(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error) {
	affected, err := r.queries.DemoteStaleOccupiedAt(ctx, tx, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to demote stale occupied slots", err)
	}

	return affected, nil
}

func (r *SlotRepository) ReleaseIfNoActiveBookings(ctx context.Context, tx sqlc.DBTX, slotIDs []uuid.UUID) (int64, error) {
	if len(slotIDs) == 0 {
		return 0, nil
	}

	affected, err := r.queries.ReleaseSlotsWithNoActiveBookings(ctx, tx, slotIDs)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to release slots", err)
	}

	return affected, nil
}
