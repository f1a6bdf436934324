package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SignupRequest - POST /api/auth/signup
type SignupRequest struct {
	ID       string `json:"id"`
	Password string `json:"pw"`
	Name     string `json:"name"`
}

func (r *SignupRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Name = strings.TrimSpace(r.Name)
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("id is required"), validation.Length(1, 50)),
		// bcrypt chỉ dùng 72 byte đầu
		validation.Field(&r.Password, validation.Required.Error("pw is required"), validation.Length(1, 72)),
		validation.Field(&r.Name, validation.Required.Error("name is required"), validation.Length(1, 100)),
	)
}

// LoginRequest - POST /api/auth/login
type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"pw"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("id is required")),
		validation.Field(&r.Password, validation.Required.Error("pw is required")),
	)
}

type UserDTO struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        UserDTO   `json:"user"`
}
