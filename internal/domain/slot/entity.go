package slot

import (
	"time"

	"github.com/google/uuid"
)

// Slot's status is a denormalized summary of its active bookings.
// Only the allocation engine and the admin override path may write it.
type Slot struct {
	id        uuid.UUID
	position  Position
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewSlot(position Position) *Slot {
	return &Slot{
		id:       uuid.New(),
		position: position,
		status:   StatusAvailable,
	}
}

func ReconstructSlot(id uuid.UUID, position Position, status Status, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		id:        id,
		position:  position,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Slot) ID() uuid.UUID        { return s.id }
func (s *Slot) Position() Position   { return s.position }
func (s *Slot) Status() Status       { return s.status }
func (s *Slot) CreatedAt() time.Time { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time { return s.updatedAt }

// CanReserve reports whether a new booking may be placed on the slot.
// Reserved/occupied slots still accept non-overlapping future windows;
// only maintenance withdraws a slot from booking entirely.
func (s *Slot) CanReserve() bool {
	return s.status != StatusMaintenance
}

func (s *Slot) UnderMaintenance() bool {
	return s.status == StatusMaintenance
}
