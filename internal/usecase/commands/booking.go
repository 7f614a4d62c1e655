package commands

import (
	"context"
	"log/slog"
	"time"

	"parking-reserve/internal/domain/booking"
	"parking-reserve/internal/domain/slot"
	"parking-reserve/internal/domain/user"
	reqdto "parking-reserve/internal/handler/dto/request"
	"parking-reserve/internal/infra"
	"parking-reserve/internal/pkg/clock"
	"parking-reserve/internal/pkg/errs"
	"parking-reserve/internal/usecase/queries"
	"parking-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	Reserve(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	invalidator    ListingInvalidator
	pricing        booking.PriceCalculator
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	invalidator ListingInvalidator,
	pricing booking.PriceCalculator,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		invalidator:    invalidator,
		pricing:        pricing,
		clock:          clock,
	}
}

// Reserve locks the slot row before the overlap check so concurrent
// requests for the same slot serialize instead of double-booking.
func (c *bookingCommandsImpl) Reserve(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error) {
	window, err := req.ToWindow()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}
	if err := window.ValidateNotPastAt(c.clock.Now()); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SlotByIDForUpdate(ctx, req.SlotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrSlotNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		slotEntity, err := slotFromSnapshot(snap)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if !slotEntity.CanReserve() {
			return errs.ErrSlotUnavailable
		}

		overlapping, err := tx.Reads().CountOverlappingBookings(ctx, req.SlotID, window)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if overlapping > 0 {
			return errs.ErrSlotConflict
		}

		bookingEntity, err := booking.NewBooking(req.SlotID, userID, window, c.pricing)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		createdID, err = tx.Bookings().Create(ctx, tx.DB(), bookingEntity)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if slotEntity.Status() == slot.StatusAvailable {
			if err := tx.Slots().UpdateStatus(ctx, tx.DB(), req.SlotID, slot.StatusReserved); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	c.invalidateListings(ctx)

	return c.bookingQueries.GetByID(ctx, createdID)
}

// Cancel is idempotent; a second cancel of the same booking succeeds
// without touching slot state.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error {
	var cancelled bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if !actorRole.IsElevated() && snap.UserID != actorID {
			return errs.ErrForbidden
		}

		bookingEntity, err := bookingFromSnapshot(snap)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if bookingEntity.IsCancelled() {
			return nil
		}
		if err := bookingEntity.Cancel(); err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, booking.StatusCancelled); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		cancelled = true

		return c.releaseSlotIfIdle(ctx, tx, snap.SlotID, bookingID)
	})
	if err != nil {
		return err
	}

	if cancelled {
		c.invalidateListings(ctx)
	}

	return nil
}

// releaseSlotIfIdle re-derives slot state from the booking ledger instead
// of trusting the status column. The slot row lock must be taken before the
// active-booking count: two concurrent cancels of the last bookings on one
// slot would otherwise each see the other's uncommitted cancel as still
// active and both skip the release.
func (c *bookingCommandsImpl) releaseSlotIfIdle(ctx context.Context, tx shared.Tx, slotID, excludeBookingID uuid.UUID) error {
	snap, err := tx.Reads().SlotByIDForUpdate(ctx, slotID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	status, err := slot.NewStatus(snap.Status)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}
	if status == slot.StatusMaintenance || status == slot.StatusAvailable {
		return nil
	}

	remaining, err := tx.Reads().CountActiveBookingsOnSlot(ctx, slotID, excludeBookingID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if remaining > 0 {
		return nil
	}

	if err := tx.Slots().UpdateStatus(ctx, tx.DB(), slotID, slot.StatusAvailable); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return nil
}

func (c *bookingCommandsImpl) invalidateListings(ctx context.Context) {
	if err := c.invalidator.InvalidateAll(ctx); err != nil {
		slog.Warn("failed to invalidate slot listings", "error", err.Error())
	}
}

func slotFromSnapshot(snap *shared.SlotSnapshot) (*slot.Slot, error) {
	position, err := slot.NewPosition(snap.Row, snap.Col)
	if err != nil {
		return nil, err
	}

	status, err := slot.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}

	return slot.ReconstructSlot(snap.ID, position, status, time.Time{}, time.Time{}), nil
}

func bookingFromSnapshot(snap *shared.BookingSnapshot) (*booking.Booking, error) {
	window, err := booking.NewTimeWindow(snap.StartTime, snap.EndTime)
	if err != nil {
		return nil, err
	}

	status, err := booking.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		snap.ID, snap.SlotID, snap.UserID,
		window, status, booking.NewMoney(0),
		time.Time{}, time.Time{},
	), nil
}
