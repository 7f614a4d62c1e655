package queries

import (
	"time"

	"github.com/google/uuid"
)

// SlotView represents read-optimized parking slot data
type SlotView struct {
	ID        uuid.UUID `json:"id"`
	Row       int32     `json:"row"`
	Col       int32     `json:"col"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SlotListResult struct {
	Items []*SlotView `json:"items"`
	Total int64       `json:"total"`
}

// AvailabilityView is a point-in-time answer; it can be stale by the time
// a reservation is attempted and is never used as a write-side guard.
type AvailabilityView struct {
	SlotID    uuid.UUID `json:"slot_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

// BookingView represents read-optimized booking data
type BookingView struct {
	ID         uuid.UUID `json:"id"`
	SlotID     uuid.UUID `json:"slot_id"`
	SlotRow    int32     `json:"slot_row"`
	SlotCol    int32     `json:"slot_col"`
	UserID     uuid.UUID `json:"user_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID         uuid.UUID `json:"id"`
	SlotID     uuid.UUID `json:"slot_id"`
	SlotRow    int32     `json:"slot_row"`
	SlotCol    int32     `json:"slot_col"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
