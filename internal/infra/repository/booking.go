package repository

import (
	"context"
	"time"

	"parking-reserve/internal/domain/booking"
	"parking-reserve/internal/infra"
	"parking-reserve/internal/infra/repository/converter"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/pkg/pgconv"
	"parking-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) (sqlc.Bookings, error)
	UpdateBookingStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingStatusParams) (int64, error)
	CompleteExpiredBookings(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]sqlc.CompleteExpiredBookingsRow, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
}

func NewBookingRepository(queries BookingWriteQueries) *BookingRepository {
	return &BookingRepository{
		queries: queries,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) (uuid.UUID, error) {
	params := converter.BookingToCreateParams(b)

	row, err := r.queries.CreateBooking(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return row.ID, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID, status booking.Status) error {
	affected, err := r.queries.UpdateBookingStatus(ctx, tx, sqlc.UpdateBookingStatusParams{
		ID:     bookingID,
		Status: status.String(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *BookingRepository) CompleteExpired(ctx context.Context, tx sqlc.DBTX, now time.Time) ([]shared.ExpiredBooking, error) {
	rows, err := r.queries.CompleteExpiredBookings(ctx, tx, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to complete expired bookings", err)
	}

	result := make([]shared.ExpiredBooking, len(rows))
	for i, row := range rows {
		result[i] = shared.ExpiredBooking{ID: row.ID, SlotID: row.SlotID}
	}

	return result, nil
}
