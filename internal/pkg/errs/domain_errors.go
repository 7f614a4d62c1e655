package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Slot errors
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrSlotConflict    = errors.New("slot conflict")
	ErrDuplicateSlot   = errors.New("slot position already taken")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidWindow   = errors.New("invalid booking window")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
