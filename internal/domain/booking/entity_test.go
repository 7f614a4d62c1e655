//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parking-reserve/internal/domain/booking"
	"parking-reserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end time.Time) booking.TimeWindow {
	t.Helper()
	w, err := booking.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestTimeWindow(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("validation", func(t *testing.T) {
		_, err := booking.NewTimeWindow(base, base.Add(time.Hour))
		assert.NoError(t, err)

		_, err = booking.NewTimeWindow(base, base)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)

		_, err = booking.NewTimeWindow(base.Add(time.Hour), base)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)
	})

	t.Run("overlap semantics", func(t *testing.T) {
		w := mustWindow(t, base, base.Add(2*time.Hour))

		testCases := []struct {
			name     string
			other    booking.TimeWindow
			overlaps bool
		}{
			{
				name:     "identical window overlaps",
				other:    mustWindow(t, base, base.Add(2*time.Hour)),
				overlaps: true,
			},
			{
				name:     "partial overlap at tail",
				other:    mustWindow(t, base.Add(time.Hour), base.Add(3*time.Hour)),
				overlaps: true,
			},
			{
				name:     "containing window overlaps",
				other:    mustWindow(t, base.Add(-time.Hour), base.Add(3*time.Hour)),
				overlaps: true,
			},
			{
				name:     "back-to-back after does not overlap",
				other:    mustWindow(t, base.Add(2*time.Hour), base.Add(3*time.Hour)),
				overlaps: false,
			},
			{
				name:     "back-to-back before does not overlap",
				other:    mustWindow(t, base.Add(-time.Hour), base),
				overlaps: false,
			},
			{
				name:     "disjoint window does not overlap",
				other:    mustWindow(t, base.Add(5*time.Hour), base.Add(6*time.Hour)),
				overlaps: false,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.overlaps, w.Overlaps(tc.other))
				assert.Equal(t, tc.overlaps, tc.other.Overlaps(w))
			})
		}
	})

	t.Run("contains is half-open", func(t *testing.T) {
		w := mustWindow(t, base, base.Add(time.Hour))

		assert.True(t, w.Contains(base), "start instant is inside")
		assert.True(t, w.Contains(base.Add(30*time.Minute)))
		assert.False(t, w.Contains(base.Add(time.Hour)), "end instant is outside")
		assert.False(t, w.Contains(base.Add(-time.Nanosecond)))
	})

	t.Run("past validation", func(t *testing.T) {
		w := mustWindow(t, base, base.Add(time.Hour))

		assert.NoError(t, w.ValidateNotPastAt(base), "window starting now is allowed")
		assert.NoError(t, w.ValidateNotPastAt(base.Add(-time.Minute)))
		assert.ErrorIs(t, w.ValidateNotPastAt(base.Add(time.Minute)), booking.ErrWindowInPast)
	})
}

func TestBooking(t *testing.T) {
	t.Run("new booking is confirmed and priced", func(t *testing.T) {
		start := time.Now().Add(time.Hour)
		window := mustWindow(t, start, start.Add(2*time.Hour))
		calc := booking.NewFlatRateCalculator()

		actual, err := booking.NewBooking(uuid.New(), uuid.New(), window, calc)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.Equal(t, int64(1000), actual.Price().Cents())
		assert.True(t, actual.IsActive())
	})

	t.Run("cancel transitions", func(t *testing.T) {
		testCases := []struct {
			name       string
			status     string
			errIs      error
			wantStatus booking.Status
		}{
			{name: "confirmed booking cancels", status: "confirmed", wantStatus: booking.StatusCancelled},
			{name: "pending booking cancels", status: "pending", wantStatus: booking.StatusCancelled},
			{name: "cancelling twice is a no-op", status: "cancelled", wantStatus: booking.StatusCancelled},
			{name: "completed booking cannot cancel", status: "completed", errIs: booking.ErrAlreadyFinished, wantStatus: booking.StatusCompleted},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				b, err := builder.NewBookingBuilder().
					With(func(b *builder.BookingBuilder) { b.Status = tc.status }).
					BuildDomain()
				require.NoError(t, err)

				err = b.Cancel()
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				} else {
					assert.NoError(t, err)
				}
				assert.Equal(t, tc.wantStatus, b.Status())
			})
		}
	})

	t.Run("expiry boundary", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		end := b.Window().End()
		assert.False(t, b.HasExpired(end.Add(-time.Second)))
		assert.True(t, b.HasExpired(end), "end instant counts as expired")
		assert.True(t, b.HasExpired(end.Add(time.Second)))
	})

	t.Run("occupancy", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		inside := b.Window().Start().Add(time.Minute)
		assert.True(t, b.OccupiesAt(inside))
		assert.False(t, b.OccupiesAt(b.Window().Start().Add(-time.Minute)))
		assert.False(t, b.OccupiesAt(b.Window().End()))

		cancelled, err := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.Status = "cancelled" }).
			BuildDomain()
		require.NoError(t, err)
		assert.False(t, cancelled.OccupiesAt(inside), "cancelled bookings never occupy")
	})
}

func TestFlatRateCalculator(t *testing.T) {
	calc := booking.NewFlatRateCalculator()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		duration time.Duration
		want     int64
	}{
		{name: "one hour", duration: time.Hour, want: 500},
		{name: "two hours", duration: 2 * time.Hour, want: 1000},
		{name: "half hour prorates", duration: 30 * time.Minute, want: 250},
		{name: "ninety minutes prorates", duration: 90 * time.Minute, want: 750},
		// 0.7 hours is not float-representable; integer minute arithmetic
		// must not truncate 349.999... down to 349.
		{name: "forty-two minutes prorates exactly", duration: 42 * time.Minute, want: 350},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := mustWindow(t, base, base.Add(tc.duration))
			assert.Equal(t, tc.want, calc.CalculatePriceCents(w))
		})
	}
}
