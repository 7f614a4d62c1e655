//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"parking-reserve/internal/infra"
	"parking-reserve/internal/pkg/errs"
	"parking-reserve/internal/usecase/queries"
	"parking-reserve/tests/common/builder"
	queriesmock "parking-reserve/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type slotQueriesFixture struct {
	slots    *queriesmock.MockSlotViewRepo
	bookings *queriesmock.MockOverlapCounter
	cache    *queriesmock.MockSlotListingCache
	queries  queries.SlotQueries
}

func newSlotQueriesFixture(t *testing.T, ctrl *gomock.Controller) *slotQueriesFixture {
	t.Helper()

	f := &slotQueriesFixture{
		slots:    queriesmock.NewMockSlotViewRepo(ctrl),
		bookings: queriesmock.NewMockOverlapCounter(ctrl),
		cache:    queriesmock.NewMockSlotListingCache(ctrl),
	}
	f.queries = queries.NewSlotQueries(f.slots, f.bookings, f.cache)
	return f
}

// passthroughCache runs the compute function instead of hitting Redis and
// captures the key the query built.
func (f *slotQueriesFixture) passthroughCache(capturedKey *string) {
	f.cache.EXPECT().GetOrCompute(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, key string, compute func(ctx context.Context) (*queries.SlotListResult, error)) (*queries.SlotListResult, error) {
			if capturedKey != nil {
				*capturedKey = key
			}
			return compute(ctx)
		})
}

func TestSlotQueries_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		view := builder.NewSlotBuilder().BuildView()
		f.slots.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := f.queries.GetByID(ctx, view.ID)

		require.NoError(t, err)
		assert.Equal(t, view, actual)
	})

	t.Run("error: not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		slotID := uuid.New()
		f.slots.EXPECT().FindByID(gomock.Any(), slotID).
			Return(nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound))

		_, err := f.queries.GetByID(ctx, slotID)
		assert.True(t, errs.Is(err, errs.ErrSlotNotFound))
	})
}

func TestSlotQueries_List(t *testing.T) {
	ctx := context.Background()

	t.Run("success: page computed through cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		items := []*queries.SlotView{
			builder.NewSlotBuilder().BuildView(),
			builder.NewSlotBuilder().With(func(b *builder.SlotBuilder) { b.Col = 2 }).BuildView(),
		}
		f.passthroughCache(nil)
		f.slots.EXPECT().FindPage(gomock.Any(), nil, nil, int32(20), int32(0)).Return(items, nil)
		f.slots.EXPECT().Count(gomock.Any(), nil, nil).Return(int64(2), nil)

		result, err := f.queries.List(ctx, queries.SlotListFilter{Limit: 20})

		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, int64(2), result.Total)
	})

	t.Run("limit defaults when zero and caps at the maximum", func(t *testing.T) {
		cases := []struct {
			name      string
			limit     int32
			offset    int32
			wantLimit int32
		}{
			{"zero falls back to default", 0, 0, 50},
			{"negative falls back to default", -1, 0, 50},
			{"oversized is capped", 500, 0, 200},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				f := newSlotQueriesFixture(t, ctrl)

				f.passthroughCache(nil)
				f.slots.EXPECT().FindPage(gomock.Any(), nil, nil, tc.wantLimit, int32(0)).Return(nil, nil)
				f.slots.EXPECT().Count(gomock.Any(), nil, nil).Return(int64(0), nil)

				_, err := f.queries.List(ctx, queries.SlotListFilter{Limit: tc.limit, Offset: tc.offset})
				require.NoError(t, err)
			})
		}
	})

	t.Run("cache key reflects the clamped filter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		status := "available"
		row := int32(3)
		var key string
		f.passthroughCache(&key)
		f.slots.EXPECT().FindPage(gomock.Any(), &status, &row, int32(10), int32(20)).Return(nil, nil)
		f.slots.EXPECT().Count(gomock.Any(), &status, &row).Return(int64(0), nil)

		_, err := f.queries.List(ctx, queries.SlotListFilter{Status: &status, Row: &row, Limit: 10, Offset: 20})

		require.NoError(t, err)
		assert.Equal(t, "status=available:row=3:limit=10:offset=20", key)
	})

	t.Run("error: page query fails inside compute", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		f.passthroughCache(nil)
		f.slots.EXPECT().FindPage(gomock.Any(), nil, nil, int32(50), int32(0)).
			Return(nil, infra.WrapRepoErr("query failed", assert.AnError))

		_, err := f.queries.List(ctx, queries.SlotListFilter{})
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestSlotQueries_CheckAvailability(t *testing.T) {
	ctx := context.Background()
	start := time.Now().Add(time.Hour).Truncate(time.Minute)
	end := start.Add(2 * time.Hour)

	t.Run("available when nothing overlaps", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		view := builder.NewSlotBuilder().BuildView()
		f.slots.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		f.bookings.EXPECT().CountOverlapping(gomock.Any(), view.ID, start, end).Return(int64(0), nil)

		actual, err := f.queries.CheckAvailability(ctx, view.ID, start, end)

		require.NoError(t, err)
		assert.True(t, actual.Available)
		assert.Equal(t, start, actual.StartTime)
		assert.Equal(t, end, actual.EndTime)
	})

	t.Run("unavailable when a booking overlaps", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		view := builder.NewSlotBuilder().BuildView()
		f.slots.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		f.bookings.EXPECT().CountOverlapping(gomock.Any(), view.ID, start, end).Return(int64(1), nil)

		actual, err := f.queries.CheckAvailability(ctx, view.ID, start, end)

		require.NoError(t, err)
		assert.False(t, actual.Available)
	})

	t.Run("maintenance slot is unavailable without checking bookings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		view := builder.NewSlotBuilder().
			With(func(b *builder.SlotBuilder) { b.Status = "maintenance" }).
			BuildView()
		f.slots.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := f.queries.CheckAvailability(ctx, view.ID, start, end)

		require.NoError(t, err)
		assert.False(t, actual.Available)
	})

	t.Run("error: inverted window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		_, err := f.queries.CheckAvailability(ctx, uuid.New(), end, start)
		assert.True(t, errs.Is(err, errs.ErrInvalidWindow))
	})

	t.Run("error: slot not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newSlotQueriesFixture(t, ctrl)

		slotID := uuid.New()
		f.slots.EXPECT().FindByID(gomock.Any(), slotID).
			Return(nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound))

		_, err := f.queries.CheckAvailability(ctx, slotID, start, end)
		assert.True(t, errs.Is(err, errs.ErrSlotNotFound))
	})
}
