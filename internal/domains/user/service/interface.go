package service

import (
	"context"

	"bookcatalog-backend/internal/domains/user/model"
)

type Service interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.UserDTO, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}
