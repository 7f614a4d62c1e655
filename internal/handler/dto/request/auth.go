package request

import (
	"parking-reserve/internal/domain/user"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r *LoginRequest) ToDomain() (user.Credentials, error) {
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return user.Credentials{}, err
	}

	password, err := user.NewPassword(r.Password)
	if err != nil {
		return user.Credentials{}, err
	}

	return user.NewCredentials(email, password), nil
}
