package commands

import (
	"context"
	"log/slog"

	"parking-reserve/internal/pkg/clock"
	"parking-reserve/internal/pkg/errs"
	"parking-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

// SweepResult reports how many rows each lifecycle pass touched.
type SweepResult struct {
	CompletedBookings int64
	ReleasedSlots     int64
	DemotedSlots      int64
	OccupiedSlots     int64
}

// LifecycleCommands runs the periodic ground-truth sweeps: bookings whose
// window has elapsed become completed, slots without active bookings are
// released, occupied slots whose confirmed window has passed fall back to
// reserved, and slots inside a confirmed window are marked occupied.
type LifecycleCommands interface {
	Sweep(ctx context.Context) (*SweepResult, error)
}

type lifecycleCommandsImpl struct {
	uow         shared.UnitOfWork
	invalidator ListingInvalidator
	clock       clock.Clock
}

func NewLifecycleCommands(uow shared.UnitOfWork, invalidator ListingInvalidator, clock clock.Clock) LifecycleCommands {
	return &lifecycleCommandsImpl{
		uow:         uow,
		invalidator: invalidator,
		clock:       clock,
	}
}

func (c *lifecycleCommandsImpl) Sweep(ctx context.Context) (*SweepResult, error) {
	now := c.clock.Now()
	result := &SweepResult{}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired, err := tx.Bookings().CompleteExpired(ctx, tx.DB(), now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.CompletedBookings = int64(len(expired))

		if len(expired) > 0 {
			released, err := tx.Slots().ReleaseIfNoActiveBookings(ctx, tx.DB(), uniqueSlotIDs(expired))
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			result.ReleasedSlots = released
		}

		// A slot can stay occupied after its booking expires when a future
		// booking blocks the release pass.
		demoted, err := tx.Slots().DemoteStaleOccupiedAt(ctx, tx.DB(), now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.DemotedSlots = demoted

		occupied, err := tx.Slots().MarkOccupiedAt(ctx, tx.DB(), now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result.OccupiedSlots = occupied

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.CompletedBookings > 0 || result.ReleasedSlots > 0 || result.DemotedSlots > 0 || result.OccupiedSlots > 0 {
		if err := c.invalidator.InvalidateAll(ctx); err != nil {
			slog.Warn("failed to invalidate slot listings after sweep", "error", err.Error())
		}
	}

	return result, nil
}

func uniqueSlotIDs(expired []shared.ExpiredBooking) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(expired))
	ids := make([]uuid.UUID, 0, len(expired))
	for _, e := range expired {
		if _, ok := seen[e.SlotID]; ok {
			continue
		}
		seen[e.SlotID] = struct{}{}
		ids = append(ids, e.SlotID)
	}
	return ids
}
