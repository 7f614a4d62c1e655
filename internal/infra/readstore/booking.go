package readstore

import (
	"context"
	"time"

	"parking-reserve/internal/infra"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/pkg/pgconv"
	"parking-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetBookingByIDRow, error)
	ListBookingsByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserParams) ([]sqlc.ListBookingsByUserRow, error)
	CountOverlappingBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.CountOverlappingBookingsParams) (int64, error)
	CountActiveBookingsOnSlot(ctx context.Context, db sqlc.DBTX, arg sqlc.CountActiveBookingsOnSlotParams) (int64, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries *sqlc.Queries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return rowToBookingView(row), nil
}

func (r *BookingReadStore) FindByUserIDPaginated(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	rows, err := r.queries.ListBookingsByUser(ctx, r.db, sqlc.ListBookingsByUserParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}

	result := make([]*queries.BookingListItem, len(rows))
	for i, row := range rows {
		result[i] = toBookingListItemFromRow(row)
	}

	return result, nil
}

func (r *BookingReadStore) CountOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time) (int64, error) {
	count, err := r.queries.CountOverlappingBookings(ctx, r.db, sqlc.CountOverlappingBookingsParams{
		SlotID:    slotID,
		StartTime: pgconv.TimeToPgtype(start),
		EndTime:   pgconv.TimeToPgtype(end),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}

	return count, nil
}

func (r *BookingReadStore) CountActiveOnSlot(ctx context.Context, slotID, excludeBookingID uuid.UUID) (int64, error) {
	count, err := r.queries.CountActiveBookingsOnSlot(ctx, r.db, sqlc.CountActiveBookingsOnSlotParams{
		SlotID:    slotID,
		ExcludeID: excludeBookingID,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active bookings on slot", err)
	}

	return count, nil
}

func rowToBookingView(row sqlc.GetBookingByIDRow) *queries.BookingView {
	return &queries.BookingView{
		ID:         row.ID,
		SlotID:     row.SlotID,
		SlotRow:    row.RowNumber,
		SlotCol:    row.ColNumber,
		UserID:     row.UserID,
		StartTime:  pgconv.TimeFromPgtype(row.StartTime),
		EndTime:    pgconv.TimeFromPgtype(row.EndTime),
		Status:     row.Status,
		PriceCents: row.PriceCents,
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:  pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func toBookingListItemFromRow(row sqlc.ListBookingsByUserRow) *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:         row.ID,
		SlotID:     row.SlotID,
		SlotRow:    row.RowNumber,
		SlotCol:    row.ColNumber,
		StartTime:  pgconv.TimeFromPgtype(row.StartTime),
		EndTime:    pgconv.TimeFromPgtype(row.EndTime),
		Status:     row.Status,
		PriceCents: row.PriceCents,
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
