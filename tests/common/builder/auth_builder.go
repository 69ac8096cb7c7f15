//go:build unit || e2e

package builder

import (
	"slot-booking/internal/domain/user"
	reqdto "slot-booking/internal/handler/dto/request"
)

type AuthBuilder struct {
	Name     string
	Email    string
	Password string
	Role     string
	Club     *string
}

func NewAuthBuilder() *AuthBuilder {
	club := user.ClubTechnical.String()
	return &AuthBuilder{
		Name:     "Test Admin",
		Email:    "test@example.com",
		Password: "password123",
		Role:     user.RoleClubAdmin.String(),
		Club:     &club,
	}
}

func (a *AuthBuilder) With(mutate func(*AuthBuilder)) *AuthBuilder {
	mutate(a)
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Name:     a.Name,
		Email:    a.Email,
		Password: a.Password,
		Role:     a.Role,
		Club:     a.Club,
	}
}
