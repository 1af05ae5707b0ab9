package dto

import (
	"meetapp.app/api/internal/model"
	"meetapp.app/api/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Params() service.RegisterParams {
	return service.RegisterParams{Name: r.Name, Email: r.Email, Password: r.Password}
}

type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	OldPassword     *string `json:"oldPassword,omitempty"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`
}

func (r UpdateProfileRequest) Update() service.ProfileUpdate {
	return service.ProfileUpdate{
		Name:            r.Name,
		Email:           r.Email,
		OldPassword:     r.OldPassword,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

type UserResponse struct {
	ID    int64  `json:"id,string"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
