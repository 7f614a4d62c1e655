package queries

import (
	"context"

	"github.com/google/uuid"
)

// UserReadStore provides user lookups for authentication flows. FindByEmail
// also returns the stored password hash for credential verification.
type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*AuthorizedUserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}
