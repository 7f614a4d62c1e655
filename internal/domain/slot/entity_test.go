//go:build unit

package slot_test

import (
	"testing"
	"time"

	"parking-reserve/internal/domain/slot"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(slot.Position{}),
	cmpopts.EquateEmpty(),
}

func TestPosition(t *testing.T) {
	testCases := []struct {
		name  string
		row   int
		col   int
		errIs error
	}{
		{name: "valid position", row: 1, col: 1},
		{name: "large coordinates", row: 200, col: 300},
		{name: "zero row", row: 0, col: 1, errIs: slot.ErrInvalidPosition},
		{name: "zero col", row: 1, col: 0, errIs: slot.ErrInvalidPosition},
		{name: "negative row", row: -1, col: 1, errIs: slot.ErrInvalidPosition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := slot.NewPosition(tc.row, tc.col)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.row, p.Row())
			assert.Equal(t, tc.col, p.Col())
		})
	}
}

func TestSlot(t *testing.T) {
	t.Run("new slot starts available", func(t *testing.T) {
		position, err := slot.NewPosition(2, 3)
		require.NoError(t, err)

		actual := slot.NewSlot(position)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, slot.StatusAvailable, actual.Status())
		if diff := cmp.Diff(position, actual.Position(), cmpOpts...); diff != "" {
			t.Errorf("Position mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("reservation gate", func(t *testing.T) {
		testCases := []struct {
			name       string
			status     slot.Status
			canReserve bool
		}{
			{name: "available slot accepts bookings", status: slot.StatusAvailable, canReserve: true},
			{name: "reserved slot accepts non-overlapping bookings", status: slot.StatusReserved, canReserve: true},
			{name: "occupied slot accepts non-overlapping bookings", status: slot.StatusOccupied, canReserve: true},
			{name: "maintenance withdraws the slot", status: slot.StatusMaintenance, canReserve: false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				position, err := slot.NewPosition(1, 1)
				require.NoError(t, err)

				s := slot.ReconstructSlot(uuid.New(), position, tc.status, time.Now(), time.Now())
				assert.Equal(t, tc.canReserve, s.CanReserve())
				assert.Equal(t, tc.status == slot.StatusMaintenance, s.UnderMaintenance())
			})
		}
	})
}

func TestNewStatus(t *testing.T) {
	for _, valid := range []string{"available", "reserved", "occupied", "maintenance"} {
		s, err := slot.NewStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, s.String())
	}

	_, err := slot.NewStatus("broken")
	assert.ErrorIs(t, err, slot.ErrInvalidStatus)
}
