package request

import (
	"slot-booking/internal/usecase/commands"
)

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role" binding:"omitempty,oneof=user club_admin super_admin"`
	Club     *string `json:"club" binding:"omitempty,club"`
}

func (r *RegisterRequest) ToInput() commands.RegisterInput {
	return commands.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Club:     r.Club,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest leaves omitted fields unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
	Club  *string `json:"club" binding:"omitempty,club"`
}

func (r *UpdateProfileRequest) ToInput() commands.ProfileInput {
	return commands.ProfileInput{Name: r.Name, Email: r.Email, Club: r.Club}
}
