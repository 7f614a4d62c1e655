//go:build unit || e2e

package builder

import (
	"time"

	dombooking "parking-reserve/internal/domain/booking"
	reqdto "parking-reserve/internal/handler/dto/request"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/usecase/queries"
	"parking-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingBuilder struct {
	ID         uuid.UUID
	SlotID     uuid.UUID
	SlotRow    int
	SlotCol    int
	UserID     uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     string
	PriceCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	start := now.Add(time.Hour).Truncate(time.Minute)
	return &BookingBuilder{
		ID:         uuid.New(),
		SlotID:     uuid.New(),
		SlotRow:    1,
		SlotCol:    1,
		UserID:     uuid.New(),
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Status:     dombooking.StatusConfirmed.String(),
		PriceCents: 1000,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	window, err := dombooking.NewTimeWindow(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	status, err := dombooking.NewStatus(b.Status)
	if err != nil {
		return nil, err
	}
	return dombooking.ReconstructBooking(
		b.ID, b.SlotID, b.UserID,
		window, status, dombooking.NewMoney(b.PriceCents),
		b.CreatedAt, b.UpdatedAt,
	), nil
}

func (b *BookingBuilder) BuildInfra() sqlc.Bookings {
	return sqlc.Bookings{
		ID:         b.ID,
		SlotID:     b.SlotID,
		UserID:     b.UserID,
		StartTime:  pgtype.Timestamptz{Time: b.StartTime, Valid: true},
		EndTime:    pgtype.Timestamptz{Time: b.EndTime, Valid: true},
		Status:     b.Status,
		PriceCents: b.PriceCents,
		CreatedAt:  pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:  pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        b.ID,
		SlotID:    b.SlotID,
		UserID:    b.UserID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:         b.ID,
		SlotID:     b.SlotID,
		SlotRow:    int32(b.SlotRow),
		SlotCol:    int32(b.SlotCol),
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
		PriceCents: b.PriceCents,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:         b.ID,
		SlotID:     b.SlotID,
		SlotRow:    int32(b.SlotRow),
		SlotCol:    int32(b.SlotCol),
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
		PriceCents: b.PriceCents,
		CreatedAt:  b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		SlotID:    b.SlotID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}
