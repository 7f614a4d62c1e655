package queries

import (
	"context"
	"fmt"
	"time"

	"parking-reserve/internal/domain/booking"
	"parking-reserve/internal/domain/slot"
	"parking-reserve/internal/infra"
	"parking-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type SlotListFilter struct {
	Status *string
	Row    *int32
	Limit  int32
	Offset int32
}

type SlotViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	FindPage(ctx context.Context, status *string, rowNumber *int32, limit, offset int32) ([]*SlotView, error)
	Count(ctx context.Context, status *string, rowNumber *int32) (int64, error)
}

type OverlapCounter interface {
	CountOverlapping(ctx context.Context, slotID uuid.UUID, start, end time.Time) (int64, error)
}

// SlotListingCache serves listing pages from Redis, falling back to the
// compute function on miss or cache failure.
type SlotListingCache interface {
	GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (*SlotListResult, error)) (*SlotListResult, error)
}

type SlotQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	List(ctx context.Context, filter SlotListFilter) (*SlotListResult, error)
	CheckAvailability(ctx context.Context, slotID uuid.UUID, start, end time.Time) (*AvailabilityView, error)
}

type slotQueriesImpl struct {
	slots    SlotViewRepo
	bookings OverlapCounter
	cache    SlotListingCache
}

func NewSlotQueries(slots SlotViewRepo, bookings OverlapCounter, cache SlotListingCache) SlotQueries {
	return &slotQueriesImpl{
		slots:    slots,
		bookings: bookings,
		cache:    cache,
	}
}

func (q *slotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SlotView, error) {
	view, err := q.slots.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSlotNotFound
		}
		return nil, err
	}

	return view, nil
}

func (q *slotQueriesImpl) List(ctx context.Context, filter SlotListFilter) (*SlotListResult, error) {
	filter = clampFilter(filter)

	return q.cache.GetOrCompute(ctx, listingKey(filter), func(ctx context.Context) (*SlotListResult, error) {
		items, err := q.slots.FindPage(ctx, filter.Status, filter.Row, filter.Limit, filter.Offset)
		if err != nil {
			return nil, err
		}

		total, err := q.slots.Count(ctx, filter.Status, filter.Row)
		if err != nil {
			return nil, err
		}

		return &SlotListResult{Items: items, Total: total}, nil
	})
}

// CheckAvailability is advisory only; the reservation path re-checks under
// a row lock.
func (q *slotQueriesImpl) CheckAvailability(ctx context.Context, slotID uuid.UUID, start, end time.Time) (*AvailabilityView, error) {
	window, err := booking.NewTimeWindow(start, end)
	if err != nil {
		return nil, errs.ErrInvalidWindow
	}

	view, err := q.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityView{
		SlotID:    slotID,
		StartTime: window.Start(),
		EndTime:   window.End(),
	}

	if view.Status == slot.StatusMaintenance.String() {
		return result, nil
	}

	overlapping, err := q.bookings.CountOverlapping(ctx, slotID, window.Start(), window.End())
	if err != nil {
		return nil, err
	}

	result.Available = overlapping == 0
	return result, nil
}

func clampFilter(filter SlotListFilter) SlotListFilter {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

func listingKey(filter SlotListFilter) string {
	status := "any"
	if filter.Status != nil {
		status = *filter.Status
	}
	row := "any"
	if filter.Row != nil {
		row = fmt.Sprintf("%d", *filter.Row)
	}
	return fmt.Sprintf("status=%s:row=%s:limit=%d:offset=%d", status, row, filter.Limit, filter.Offset)
}
