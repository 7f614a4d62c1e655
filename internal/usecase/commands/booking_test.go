//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"parking-reserve/internal/domain/booking"
	"parking-reserve/internal/domain/slot"
	"parking-reserve/internal/domain/user"
	"parking-reserve/internal/infra"
	"parking-reserve/internal/pkg/clock"
	"parking-reserve/internal/pkg/errs"
	"parking-reserve/internal/usecase/commands"
	"parking-reserve/internal/usecase/shared"
	"parking-reserve/tests/common/builder"
	commandsmock "parking-reserve/tests/mock/commands"
	queriesmock "parking-reserve/tests/mock/queries"
	sharedmock "parking-reserve/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type bookingCommandsFixture struct {
	uow         *sharedmock.MockUnitOfWork
	tx          *sharedmock.MockTx
	reads       *sharedmock.MockCommandReads
	slots       *sharedmock.MockSlotRepository
	bookings    *sharedmock.MockBookingRepository
	queries     *queriesmock.MockBookingQueries
	invalidator *commandsmock.MockListingInvalidator
	clock       *clock.MockClock
	commands    commands.BookingCommands
}

func newBookingCommandsFixture(t *testing.T, ctrl *gomock.Controller) *bookingCommandsFixture {
	t.Helper()

	f := &bookingCommandsFixture{
		uow:         sharedmock.NewMockUnitOfWork(ctrl),
		tx:          sharedmock.NewMockTx(ctrl),
		reads:       sharedmock.NewMockCommandReads(ctrl),
		slots:       sharedmock.NewMockSlotRepository(ctrl),
		bookings:    sharedmock.NewMockBookingRepository(ctrl),
		queries:     queriesmock.NewMockBookingQueries(ctrl),
		invalidator: commandsmock.NewMockListingInvalidator(ctrl),
		clock:       clock.NewMockClock(time.Now()),
	}

	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Slots().Return(f.slots).AnyTimes()
	f.tx.EXPECT().Bookings().Return(f.bookings).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()

	f.commands = commands.NewBookingCommands(f.uow, f.queries, f.invalidator, booking.NewFlatRateCalculator(), f.clock)
	return f
}

// expectWithin routes the transactional closure through the mock Tx.
func (f *bookingCommandsFixture) expectWithin() {
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		})
}

// =============================================================================
// Reserve Tests
// =============================================================================

func TestBookingCommands_Reserve(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success: booking created and slot marked reserved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		slotBuilder := builder.NewSlotBuilder()
		req := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.SlotID = slotBuilder.ID }).
			BuildCreateRequestDTO()
		view := builder.NewBookingBuilder().BuildView()

		f.expectWithin()
		f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotBuilder.ID).Return(slotBuilder.BuildSnapshot(), nil)
		f.reads.EXPECT().CountOverlappingBookings(gomock.Any(), slotBuilder.ID, gomock.Any()).Return(int64(0), nil)
		f.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(view.ID, nil)
		f.slots.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), slotBuilder.ID, slot.StatusReserved).Return(nil)
		f.invalidator.EXPECT().InvalidateAll(gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := f.commands.Reserve(ctx, req, userID)

		require.NoError(t, err)
		assert.Equal(t, view.ID, actual.ID)
	})

	t.Run("success: occupied slot keeps its status for non-overlapping window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		slotBuilder := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) { b.Status = "occupied" })
		req := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.SlotID = slotBuilder.ID }).
			BuildCreateRequestDTO()
		view := builder.NewBookingBuilder().BuildView()

		f.expectWithin()
		f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotBuilder.ID).Return(slotBuilder.BuildSnapshot(), nil)
		f.reads.EXPECT().CountOverlappingBookings(gomock.Any(), slotBuilder.ID, gomock.Any()).Return(int64(0), nil)
		f.bookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(view.ID, nil)
		// no UpdateStatus expectation: only available slots flip to reserved
		f.invalidator.EXPECT().InvalidateAll(gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := f.commands.Reserve(ctx, req, userID)
		require.NoError(t, err)
	})

	t.Run("error: slot not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		req := builder.NewBookingBuilder().BuildCreateRequestDTO()

		f.expectWithin()
		f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), req.SlotID).
			Return(nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound))

		_, err := f.commands.Reserve(ctx, req, userID)
		assert.True(t, errs.Is(err, errs.ErrSlotNotFound))
	})

	t.Run("error: maintenance slot rejects booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		slotBuilder := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) { b.Status = "maintenance" })
		req := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.SlotID = slotBuilder.ID }).
			BuildCreateRequestDTO()

		f.expectWithin()
		f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotBuilder.ID).Return(slotBuilder.BuildSnapshot(), nil)

		_, err := f.commands.Reserve(ctx, req, userID)
		assert.True(t, errs.Is(err, errs.ErrSlotUnavailable))
	})

	t.Run("error: overlapping booking conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		slotBuilder := builder.NewSlotBuilder()
		req := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.SlotID = slotBuilder.ID }).
			BuildCreateRequestDTO()

		f.expectWithin()
		f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), slotBuilder.ID).Return(slotBuilder.BuildSnapshot(), nil)
		f.reads.EXPECT().CountOverlappingBookings(gomock.Any(), slotBuilder.ID, gomock.Any()).Return(int64(1), nil)

		_, err := f.commands.Reserve(ctx, req, userID)
		assert.True(t, errs.Is(err, errs.ErrSlotConflict))
	})

	t.Run("error: inverted window rejected before any transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		req := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.EndTime = b.StartTime.Add(-time.Hour) }).
			BuildCreateRequestDTO()

		_, err := f.commands.Reserve(ctx, req, userID)
		assert.True(t, errs.Is(err, errs.ErrInvalidWindow))
	})

	t.Run("error: window starting in the past rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		req := builder.NewBookingBuilder().BuildCreateRequestDTO()
		f.clock.Set(req.StartTime.Add(time.Minute))

		_, err := f.commands.Reserve(ctx, req, userID)
		assert.True(t, errs.Is(err, errs.ErrInvalidWindow))
	})
}

// =============================================================================
// Cancel Tests
// =============================================================================

func TestBookingCommands_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("success: owner cancels and idle slot is released", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		bookingBuilder := builder.NewBookingBuilder()
		snap := bookingBuilder.BuildSnapshot()
		slotSnap := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) {
				b.ID = snap.SlotID
				b.Status = "reserved"
			}).
			BuildSnapshot()

		f.expectWithin()
		// The slot row lock must come before the active-booking count;
		// counting first lets two concurrent cancels both see the other's
		// uncommitted cancel and leave the slot reserved forever.
		gomock.InOrder(
			f.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil),
			f.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, booking.StatusCancelled).Return(nil),
			f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), snap.SlotID).Return(slotSnap, nil),
			f.reads.EXPECT().CountActiveBookingsOnSlot(gomock.Any(), snap.SlotID, snap.ID).Return(int64(0), nil),
			f.slots.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.SlotID, slot.StatusAvailable).Return(nil),
		)
		f.invalidator.EXPECT().InvalidateAll(gomock.Any()).Return(nil)

		err := f.commands.Cancel(ctx, snap.ID, snap.UserID, user.RoleDriver)
		require.NoError(t, err)
	})

	t.Run("success: slot with remaining active bookings stays reserved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		snap := builder.NewBookingBuilder().BuildSnapshot()
		slotSnap := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) {
				b.ID = snap.SlotID
				b.Status = "reserved"
			}).
			BuildSnapshot()

		f.expectWithin()
		f.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, booking.StatusCancelled).Return(nil)
		f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), snap.SlotID).Return(slotSnap, nil)
		f.reads.EXPECT().CountActiveBookingsOnSlot(gomock.Any(), snap.SlotID, snap.ID).Return(int64(1), nil)
		f.invalidator.EXPECT().InvalidateAll(gomock.Any()).Return(nil)

		err := f.commands.Cancel(ctx, snap.ID, snap.UserID, user.RoleDriver)
		require.NoError(t, err)
	})

	t.Run("success: maintenance slot status is never touched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		snap := builder.NewBookingBuilder().BuildSnapshot()
		slotSnap := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) {
				b.ID = snap.SlotID
				b.Status = "maintenance"
			}).
			BuildSnapshot()

		f.expectWithin()
		f.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, booking.StatusCancelled).Return(nil)
		// maintenance short-circuits before the active-booking count
		f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), snap.SlotID).Return(slotSnap, nil)
		f.invalidator.EXPECT().InvalidateAll(gomock.Any()).Return(nil)

		err := f.commands.Cancel(ctx, snap.ID, snap.UserID, user.RoleDriver)
		require.NoError(t, err)
	})

	t.Run("success: cancelling twice is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		snap := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = "cancelled" }).
			BuildSnapshot()

		f.expectWithin()
		f.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		err := f.commands.Cancel(ctx, snap.ID, snap.UserID, user.RoleDriver)
		require.NoError(t, err)
	})

	t.Run("success: admin cancels another user's booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		snap := builder.NewBookingBuilder().BuildSnapshot()
		slotSnap := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) {
				b.ID = snap.SlotID
				b.Status = "reserved"
			}).
			BuildSnapshot()

		f.expectWithin()
		f.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, booking.StatusCancelled).Return(nil)
		f.reads.EXPECT().CountActiveBookingsOnSlot(gomock.Any(), snap.SlotID, snap.ID).Return(int64(0), nil)
		f.reads.EXPECT().SlotByIDForUpdate(gomock.Any(), snap.SlotID).Return(slotSnap, nil)
		f.slots.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.SlotID, slot.StatusAvailable).Return(nil)
		f.invalidator.EXPECT().InvalidateAll(gomock.Any()).Return(nil)

		err := f.commands.Cancel(ctx, snap.ID, uuid.New(), user.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("error: non-owner cannot cancel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		snap := builder.NewBookingBuilder().BuildSnapshot()

		f.expectWithin()
		f.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		err := f.commands.Cancel(ctx, snap.ID, uuid.New(), user.RoleDriver)
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})

	t.Run("error: completed booking cannot be cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		snap := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = "completed" }).
			BuildSnapshot()

		f.expectWithin()
		f.reads.EXPECT().BookingByID(gomock.Any(), snap.ID).Return(snap, nil)

		err := f.commands.Cancel(ctx, snap.ID, snap.UserID, user.RoleDriver)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("error: booking not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newBookingCommandsFixture(t, ctrl)

		bookingID := uuid.New()

		f.expectWithin()
		f.reads.EXPECT().BookingByID(gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		err := f.commands.Cancel(ctx, bookingID, uuid.New(), user.RoleDriver)
		assert.True(t, errs.Is(err, errs.ErrBookingNotFound))
	})
}
