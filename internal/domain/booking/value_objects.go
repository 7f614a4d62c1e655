package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWindow   = errors.New("start time must be before end time")
	ErrWindowInPast    = errors.New("start time cannot be in the past")
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrAlreadyFinished = errors.New("booking is already cancelled or completed")
)

// TimeWindow is a half-open interval [start, end).
type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{start: start, end: end}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// ValidateNotPastAt rejects windows that already started at the given instant.
func (w TimeWindow) ValidateNotPastAt(now time.Time) error {
	if w.start.Before(now) {
		return ErrWindowInPast
	}
	return nil
}

// Overlaps uses strict inequalities on both ends so that back-to-back
// windows sharing a boundary instant do NOT overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

// Contains reports whether the instant falls inside the half-open window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}
