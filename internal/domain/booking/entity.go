package booking

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	id        uuid.UUID
	slotID    uuid.UUID
	userID    uuid.UUID
	window    TimeWindow
	status    Status
	price     Money
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a confirmed booking for the given window, priced at
// the flat hourly rate. The window must already be validated against "now"
// by the caller (the allocation engine owns the clock).
func NewBooking(slotID, userID uuid.UUID, window TimeWindow, calc PriceCalculator) (*Booking, error) {
	cents := calc.CalculatePriceCents(window)
	if cents < 0 {
		return nil, ErrNegativePrice
	}

	return &Booking{
		id:     uuid.New(),
		slotID: slotID,
		userID: userID,
		window: window,
		status: StatusConfirmed,
		price:  NewMoney(cents),
	}, nil
}

func ReconstructBooking(
	id, slotID, userID uuid.UUID,
	window TimeWindow,
	status Status,
	price Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		slotID:    slotID,
		userID:    userID,
		window:    window,
		status:    status,
		price:     price,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) SlotID() uuid.UUID    { return b.slotID }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) Window() TimeWindow   { return b.window }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Price() Money         { return b.price }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// HasExpired reports whether the window has fully elapsed. The boundary
// instant counts as expired: [start, end) no longer contains end.
func (b *Booking) HasExpired(now time.Time) bool {
	return !now.Before(b.window.End())
}

// OccupiesAt reports whether a confirmed booking holds the physical slot
// at the given instant.
func (b *Booking) OccupiesAt(now time.Time) bool {
	return b.status == StatusConfirmed && b.window.Contains(now)
}

// Cancel marks the booking cancelled. Cancelling twice is a no-op;
// completed bookings cannot be cancelled.
func (b *Booking) Cancel() error {
	switch b.status {
	case StatusCancelled:
		return nil
	case StatusCompleted:
		return ErrAlreadyFinished
	default:
		b.status = StatusCancelled
		return nil
	}
}
