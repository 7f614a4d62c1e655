package shared

import (
	"time"

	"github.com/google/uuid"
)

type SlotSnapshot struct {
	ID     uuid.UUID
	Row    int
	Col    int
	Status string
}

// Minimal snapshot for command read operations
type BookingSnapshot struct {
	ID        uuid.UUID
	SlotID    uuid.UUID
	UserID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

type ExpiredBooking struct {
	ID     uuid.UUID
	SlotID uuid.UUID
}
