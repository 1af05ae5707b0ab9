package dto

import "meetapp.app/api/internal/service"

type SessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SessionRequest) Credentials() service.Credentials {
	return service.Credentials{Email: r.Email, Password: r.Password}
}

type SessionResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

func ToSessionResponse(s *service.Session) *SessionResponse {
	return &SessionResponse{
		User:  ToUserResponse(s.User),
		Token: s.Token,
	}
}
