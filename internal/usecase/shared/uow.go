package shared

import (
	"context"
	"time"

	"parking-reserve/internal/domain/booking"
	"parking-reserve/internal/domain/slot"
	sqlc "parking-reserve/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Users() UserRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	SlotByID(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	// SlotByIDForUpdate holds a row lock until the surrounding transaction
	// ends. Only meaningful inside Within.
	SlotByIDForUpdate(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	CountOverlappingBookings(ctx context.Context, slotID uuid.UUID, window booking.TimeWindow) (int64, error)
	CountActiveBookingsOnSlot(ctx context.Context, slotID, excludeBookingID uuid.UUID) (int64, error)
}

type SlotRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, s *slot.Slot) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, slotID uuid.UUID, status slot.Status) error
	MarkOccupiedAt(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error)
	DemoteStaleOccupiedAt(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error)
	ReleaseIfNoActiveBookings(ctx context.Context, tx sqlc.DBTX, slotIDs []uuid.UUID) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID, status booking.Status) error
	CompleteExpired(ctx context.Context, tx sqlc.DBTX, now time.Time) ([]ExpiredBooking, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, params sqlc.CreateUserParams) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx sqlc.DBTX, userID uuid.UUID) error
}
