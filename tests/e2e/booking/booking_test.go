//go:build e2e

package booking_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	reqdto "parking-reserve/internal/handler/dto/request"
	"parking-reserve/internal/handler/dto/response"
	"parking-reserve/tests/common/authtest"
	"parking-reserve/tests/common/dbtest"
	"parking-reserve/tests/common/httptest"
	"parking-reserve/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL   = "/api/bookings"
	slotsURL      = "/api/slots"
	adminSlotsURL = "/api/admin/slots"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) bookingWindow(offset time.Duration) (time.Time, time.Time) {
	start := time.Now().Add(offset).Truncate(time.Minute)
	return start, start.Add(2 * time.Hour)
}

func (s *BookingSuite) slotStatus(t *testing.T, slotID uuid.UUID) string {
	t.Helper()
	var status string
	err := s.DB.QueryRow(context.Background(), "SELECT status FROM slots WHERE id = $1", slotID).Scan(&status)
	require.NoError(t, err)
	return status
}

// =============================================================================
// TestCreateBooking - Reservation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: Driver reserves an available slot", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 1, 1, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		reqBody := reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, slotID, created.SlotID)
		require.Equal(t, "confirmed", created.Status)
		require.Equal(t, int64(1000), created.PriceCents, "2 hours at the flat rate")

		require.Equal(t, "reserved", s.slotStatus(t, slotID))
	})

	s.Run("Error case: Overlapping window is rejected with 409", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 1, 2, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusCreated, w1.Code)

		// Second booking overlaps the middle of the first window
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start.Add(time.Hour), EndTime: end.Add(time.Hour)}, token)
		require.Equal(t, http.StatusConflict, w2.Code, w2.Body.String())
	})

	s.Run("Normal case: Concurrent reserves on one slot yield a single booking", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 1, 6, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		reqBody := reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}

		// Both requests race for the same window; the row lock decides
		release := make(chan struct{})
		codes := make(chan int, 2)
		var wg sync.WaitGroup
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-release
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
				codes <- w.Code
			}()
		}
		close(release)
		wg.Wait()
		close(codes)

		var created, conflicted int
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "exactly one racing reserve may win")
		require.Equal(t, 1, conflicted, "the loser must get a conflict")
		require.Equal(t, "reserved", s.slotStatus(t, slotID))

		var count int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM bookings WHERE slot_id = $1 AND status = 'confirmed'", slotID).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	s.Run("Normal case: Back-to-back windows do not conflict", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 1, 3, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusCreated, w1.Code)

		// New window starts exactly where the previous one ends
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: end, EndTime: end.Add(time.Hour)}, token)
		require.Equal(t, http.StatusCreated, w2.Code, w2.Body.String())
	})

	s.Run("Error case: Slot under maintenance is rejected with 409", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 1, 4, "maintenance")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	s.Run("Error case: Window in the past is rejected with 400", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 1, 5, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(-24 * time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: Unknown slot is rejected with 404", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: uuid.New(), StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 1, 6, "available")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestCancelBooking - Cancellation API tests
// =============================================================================

func (s *BookingSuite) TestCancelBooking() {
	s.Run("Normal case: Cancelling the only booking releases the slot", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 2, 1, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		require.Equal(t, "reserved", s.slotStatus(t, slotID))

		cw := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusNoContent, cw.Code, cw.Body.String())

		require.Equal(t, "available", s.slotStatus(t, slotID))
	})

	s.Run("Normal case: Slot stays reserved while other bookings remain", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 2, 2, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusCreated, w1.Code)

		var first response.BookingResponse
		httptest.AssertSuccessResponse(t, w1, http.StatusCreated, &first)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: end, EndTime: end.Add(time.Hour)}, token)
		require.Equal(t, http.StatusCreated, w2.Code)

		cw := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+first.ID.String(), nil, token)
		require.Equal(t, http.StatusNoContent, cw.Code)

		require.Equal(t, "reserved", s.slotStatus(t, slotID))
	})

	s.Run("Normal case: Repeating the cancel is a no-op", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 2, 3, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
		url := bookingsURL + "/" + created.ID.String()

		cw1 := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, token)
		require.Equal(t, http.StatusNoContent, cw1.Code)

		cw2 := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, token)
		require.Equal(t, http.StatusNoContent, cw2.Code, "cancel must be idempotent")
	})

	s.Run("Error case: Another driver cannot cancel the booking", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 2, 4, "available")
		dbtest.CreateTestUser(t, s.DB, "other-driver@example.com", "driver")

		ownerToken := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")
		otherToken := authtest.LoginUser(t, s.Router, "other-driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		cw := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.ID.String(), nil, otherToken)
		require.Equal(t, http.StatusForbidden, cw.Code)
	})

	s.Run("Normal case: Admin cancels another user's booking", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 2, 5, "available")
		driverToken := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")
		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, driverToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		cw := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+created.ID.String(), nil, adminToken)
		require.Equal(t, http.StatusNoContent, cw.Code)
	})
}

// =============================================================================
// TestGetAndListBookings - Read API tests
// =============================================================================

func (s *BookingSuite) TestGetAndListBookings() {
	s.Run("Normal case: Owner reads booking detail", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 3, 1, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, gw.Code)

		var detail response.BookingResponse
		httptest.AssertSuccessResponse(t, gw, http.StatusOK, &detail)
		require.Equal(t, created.ID, detail.ID)
		require.Equal(t, int32(3), detail.SlotRow)
		require.Equal(t, int32(1), detail.SlotCol)
	})

	s.Run("Error case: Other driver cannot read the booking", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 3, 2, "available")
		dbtest.CreateTestUser(t, s.DB, "other-driver@example.com", "driver")

		ownerToken := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")
		otherToken := authtest.LoginUser(t, s.Router, "other-driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, otherToken)
		require.Equal(t, http.StatusForbidden, gw.Code)
	})

	s.Run("Normal case: Listing returns own bookings newest first", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 3, 3, "available")
		token := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		start, end := s.bookingWindow(time.Hour)
		for i := range 3 {
			offset := time.Duration(i) * 2 * time.Hour
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
				reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start.Add(offset), EndTime: end.Add(offset)}, token)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, token)
		require.Equal(t, http.StatusOK, lw.Code)

		var items []*response.BookingListResponse
		httptest.AssertSuccessResponse(t, lw, http.StatusOK, &items)
		require.Len(t, items, 3)
	})
}

// =============================================================================
// TestSlotAvailability - Availability and admin slot API tests
// =============================================================================

func (s *BookingSuite) TestSlotAvailability() {
	s.Run("Normal case: Availability flips after a reservation", func() {
		t := s.T()

		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")
		driverToken := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		// Admin registers the slot through the API
		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, adminSlotsURL,
			reqdto.CreateSlotRequest{Row: 4, Col: 1}, adminToken)
		require.Equal(t, http.StatusCreated, cw.Code, cw.Body.String())

		var slot response.SlotResponse
		httptest.AssertSuccessResponse(t, cw, http.StatusCreated, &slot)

		start, end := s.bookingWindow(time.Hour)
		availabilityURL := slotsURL + "/" + slot.ID.String() + "/availability?start=" +
			start.UTC().Format(time.RFC3339) + "&end=" + end.UTC().Format(time.RFC3339)

		aw := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, driverToken)
		require.Equal(t, http.StatusOK, aw.Code)

		var avail response.AvailabilityResponse
		httptest.AssertSuccessResponse(t, aw, http.StatusOK, &avail)
		require.True(t, avail.Available)

		bw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slot.ID, StartTime: start, EndTime: end}, driverToken)
		require.Equal(t, http.StatusCreated, bw.Code)

		aw2 := httptest.PerformRequest(t, s.Router, http.MethodGet, availabilityURL, nil, driverToken)
		require.Equal(t, http.StatusOK, aw2.Code)

		var availAfter response.AvailabilityResponse
		httptest.AssertSuccessResponse(t, aw2, http.StatusOK, &availAfter)
		require.False(t, availAfter.Available)
	})

	s.Run("Error case: Driver cannot use admin slot endpoints", func() {
		t := s.T()

		driverToken := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, adminSlotsURL,
			reqdto.CreateSlotRequest{Row: 4, Col: 2}, driverToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: Duplicate slot position is rejected with 409", func() {
		t := s.T()

		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, adminSlotsURL,
			reqdto.CreateSlotRequest{Row: 4, Col: 3}, adminToken)
		require.Equal(t, http.StatusCreated, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, adminSlotsURL,
			reqdto.CreateSlotRequest{Row: 4, Col: 3}, adminToken)
		require.Equal(t, http.StatusConflict, w2.Code)
	})

	s.Run("Normal case: Maintenance override blocks new reservations", func() {
		t := s.T()

		slotID := dbtest.CreateTestSlot(t, s.DB, 4, 4, "available")
		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")
		driverToken := authtest.LoginUser(t, s.Router, "driver@example.com", "password123")

		ow := httptest.PerformRequest(t, s.Router, http.MethodPut, adminSlotsURL+"/"+slotID.String()+"/status",
			reqdto.OverrideSlotStatusRequest{Status: "maintenance"}, adminToken)
		require.Equal(t, http.StatusOK, ow.Code, ow.Body.String())

		start, end := s.bookingWindow(time.Hour)
		bw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			reqdto.CreateBookingRequest{SlotID: slotID, StartTime: start, EndTime: end}, driverToken)
		require.Equal(t, http.StatusConflict, bw.Code)
	})
}
