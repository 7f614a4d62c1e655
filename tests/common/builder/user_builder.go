//go:build unit || e2e

package builder

import (
	"time"

	domuser "parking-reserve/internal/domain/user"
	reqdto "parking-reserve/internal/handler/dto/request"
	sqlc "parking-reserve/internal/infra/sqlc/generated"
	"parking-reserve/internal/pkg/password"
	"parking-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	ID        uuid.UUID
	Email     string
	Password  string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	now := time.Now()
	return &UserBuilder{
		ID:        uuid.New(),
		Email:     "driver@example.com",
		Password:  "password123",
		Role:      domuser.RoleDriver.String(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.Email = "admin@example.com"
	b.Role = domuser.RoleAdmin.String()
	return b
}

// Build methods
func (b *UserBuilder) BuildInfra() (sqlc.Users, error) {
	hash, err := password.HashPassword(b.Password)
	if err != nil {
		return sqlc.Users{}, err
	}
	return sqlc.Users{
		ID:           b.ID,
		Email:        b.Email,
		PasswordHash: hash,
		Role:         b.Role,
		IsActive:     b.IsActive,
		CreatedAt:    pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}, nil
}

func (b *UserBuilder) BuildView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       b.ID,
		Email:    b.Email,
		Role:     b.Role,
		IsActive: b.IsActive,
	}
}

func (b *UserBuilder) BuildLoginRequestDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    b.Email,
		Password: b.Password,
	}
}
