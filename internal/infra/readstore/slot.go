package readstore

import (
	"context"

	"parking-reserve/internal/infra"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/pkg/pgconv"
	"parking-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotViewQueries interface {
	GetSlotByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Slots, error)
	GetSlotByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Slots, error)
	ListSlots(ctx context.Context, db sqlc.DBTX, arg sqlc.ListSlotsParams) ([]sqlc.Slots, error)
	CountSlots(ctx context.Context, db sqlc.DBTX, arg sqlc.CountSlotsParams) (int64, error)
}

type SlotReadStore struct {
	queries SlotViewQueries
	db      sqlc.DBTX
}

func NewSlotReadStore(queries *sqlc.Queries, db sqlc.DBTX) *SlotReadStore {
	return &SlotReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	row, err := r.queries.GetSlotByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}

	return rowToSlotView(row), nil
}

// FindByIDForUpdate locks the slot row until the surrounding transaction
// ends. Callers outside a transaction get no locking benefit.
func (r *SlotReadStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	row, err := r.queries.GetSlotByIDForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock slot by ID", err)
	}

	return rowToSlotView(row), nil
}

func (r *SlotReadStore) FindPage(ctx context.Context, status *string, rowNumber *int32, limit, offset int32) ([]*queries.SlotView, error) {
	params := sqlc.ListSlotsParams{
		Status:    pgconv.StringPtrToPgtype(status),
		RowNumber: pgconv.Int32PtrToPgtype(rowNumber),
		Limit:     limit,
		Offset:    offset,
	}

	rows, err := r.queries.ListSlots(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}

	result := make([]*queries.SlotView, len(rows))
	for i, row := range rows {
		result[i] = rowToSlotView(row)
	}

	return result, nil
}

func (r *SlotReadStore) Count(ctx context.Context, status *string, rowNumber *int32) (int64, error) {
	total, err := r.queries.CountSlots(ctx, r.db, sqlc.CountSlotsParams{
		Status:    pgconv.StringPtrToPgtype(status),
		RowNumber: pgconv.Int32PtrToPgtype(rowNumber),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count slots", err)
	}

	return total, nil
}

func rowToSlotView(row sqlc.Slots) *queries.SlotView {
	return &queries.SlotView{
		ID:        row.ID,
		Row:       row.RowNumber,
		Col:       row.ColNumber,
		Status:    row.Status,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
