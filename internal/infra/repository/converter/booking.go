package converter

import (
	"parking-reserve/internal/domain/booking"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/pkg/pgconv"
)

func BookingToCreateParams(b *booking.Booking) sqlc.CreateBookingParams {
	window := b.Window()

	return sqlc.CreateBookingParams{
		ID:         b.ID(),
		SlotID:     b.SlotID(),
		UserID:     b.UserID(),
		StartTime:  pgconv.TimeToPgtype(window.Start()),
		EndTime:    pgconv.TimeToPgtype(window.End()),
		Status:     b.Status().String(),
		PriceCents: b.Price().Cents(),
	}
}
