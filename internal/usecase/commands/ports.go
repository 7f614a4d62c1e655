package commands

import "context"

// ListingInvalidator drops cached slot listings after state-changing
// operations. Implementations must be safe to call concurrently.
type ListingInvalidator interface {
	InvalidateAll(ctx context.Context) error
}
