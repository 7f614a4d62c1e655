//go:build unit

package queries_test

import (
	"context"
	"testing"

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

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := queriesmock.NewMockBookingViewRepo(ctrl)
		q := queries.NewBookingQueries(repo)

		view := builder.NewBookingBuilder().BuildView()
		repo.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := q.GetByID(ctx, view.ID)

		require.NoError(t, err)
		assert.Equal(t, view, actual)
	})

	t.Run("error: not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := queriesmock.NewMockBookingViewRepo(ctrl)
		q := queries.NewBookingQueries(repo)

		bookingID := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), bookingID).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound))

		_, err := q.GetByID(ctx, bookingID)
		assert.True(t, errs.Is(err, errs.ErrBookingNotFound))
	})
}

func TestBookingQueries_ListByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("paging is clamped before hitting the store", func(t *testing.T) {
		cases := []struct {
			name       string
			limit      int32
			offset     int32
			wantLimit  int32
			wantOffset int32
		}{
			{"defaults applied", 0, 0, 50, 0},
			{"negative offset reset", 10, -5, 10, 0},
			{"oversized limit capped", 1000, 0, 200, 0},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				repo := queriesmock.NewMockBookingViewRepo(ctrl)
				q := queries.NewBookingQueries(repo)

				userID := uuid.New()
				items := []*queries.BookingListItem{builder.NewBookingBuilder().BuildListItem()}
				repo.EXPECT().FindByUserIDPaginated(gomock.Any(), userID, tc.wantLimit, tc.wantOffset).
					Return(items, nil)

				actual, err := q.ListByUser(ctx, userID, tc.limit, tc.offset)

				require.NoError(t, err)
				assert.Len(t, actual, 1)
			})
		}
	})
}
