//go:build unit

package commands_test

import (
	"context"
	"testing"

	"parking-reserve/internal/domain/slot"
	"parking-reserve/internal/infra"
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

type slotCommandsFixture struct {
	uow         *sharedmock.MockUnitOfWork
	tx          *sharedmock.MockTx
	slots       *sharedmock.MockSlotRepository
	queries     *queriesmock.MockSlotQueries
	invalidator *commandsmock.MockListingInvalidator
	commands    commands.SlotCommands
}

func newSlotCommandsFixture(t *testing.T, ctrl *gomock.Controller) *slotCommandsFixture {
	t.Helper()

	f := &slotCommandsFixture{
		uow:         sharedmock.NewMockUnitOfWork(ctrl),
		tx:          sharedmock.NewMockTx(ctrl),
		slots:       sharedmock.NewMockSlotRepository(ctrl),
		queries:     queriesmock.NewMockSlotQueries(ctrl),
		invalidator: commandsmock.NewMockListingInvalidator(ctrl),
	}

	f.tx.EXPECT().Slots().Return(f.slots).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()

	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()

	f.commands = commands.NewSlotCommands(f.uow, f.queries, f.invalidator)
	return f
}

func TestSlotCommands_CreateSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("success: slot created and listings invalidated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotCommandsFixture(t, ctrl)

		b := builder.NewSlotBuilder()
		view := b.BuildView()

		f.slots.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(view.ID, nil)
		f.invalidator.EXPECT().InvalidateAll(gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := f.commands.CreateSlot(ctx, b.BuildCreateRequestDTO())

		require.NoError(t, err)
		assert.Equal(t, view.ID, actual.ID)
	})

	t.Run("error: duplicate position", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotCommandsFixture(t, ctrl)

		f.slots.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("duplicate position", nil, infra.KindDuplicateKey))

		_, err := f.commands.CreateSlot(ctx, builder.NewSlotBuilder().BuildCreateRequestDTO())
		assert.True(t, errs.Is(err, errs.ErrDuplicateSlot))
	})

	t.Run("error: invalid position fails validation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotCommandsFixture(t, ctrl)

		req := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) { b.Row = 0 }).
			BuildCreateRequestDTO()

		_, err := f.commands.CreateSlot(ctx, req)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})
}

func TestSlotCommands_OverrideStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success: status overridden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotCommandsFixture(t, ctrl)

		view := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) { b.Status = "maintenance" }).
			BuildView()

		f.slots.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), view.ID, slot.StatusMaintenance).Return(nil)
		f.invalidator.EXPECT().InvalidateAll(gomock.Any()).Return(nil)
		f.queries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := f.commands.OverrideStatus(ctx, view.ID, "maintenance")

		require.NoError(t, err)
		assert.Equal(t, "maintenance", actual.Status)
	})

	t.Run("error: unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotCommandsFixture(t, ctrl)

		_, err := f.commands.OverrideStatus(ctx, uuid.New(), "broken")
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("error: slot not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotCommandsFixture(t, ctrl)

		slotID := uuid.New()
		f.slots.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), slotID, slot.StatusMaintenance).
			Return(infra.WrapRepoErr("slot not found", nil, infra.KindNotFound))

		_, err := f.commands.OverrideStatus(ctx, slotID, "maintenance")
		assert.True(t, errs.Is(err, errs.ErrSlotNotFound))
	})
}
