package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"bookcatalog-backend/internal/domains/user/model"
	"bookcatalog-backend/internal/domains/user/repository"
	"bookcatalog-backend/pkg/jwt"
	"bookcatalog-backend/pkg/logger"
)

// DefaultBcryptCost - balance giữa security và performance
const DefaultBcryptCost = 12

type userService struct {
	repo       repository.Repository
	jwtManager *jwt.Manager
	cost       int
}

func NewUserService(repo repository.Repository, jwtManager *jwt.Manager) Service {
	return &userService{repo: repo, jwtManager: jwtManager, cost: DefaultBcryptCost}
}

// NewUserServiceWithCost dùng trong test để hash nhanh hơn
func NewUserServiceWithCost(repo repository.Repository, jwtManager *jwt.Manager, cost int) Service {
	return &userService{repo: repo, jwtManager: jwtManager, cost: cost}
}

// Signup tạo user mới, id trùng trả về ErrUserAlreadyExists
func (s *userService) Signup(ctx context.Context, req model.SignupRequest) (*model.UserDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidUserInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           req.ID,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user signed up", map[string]interface{}{"user_id": u.ID})
	dto := u.ToDTO()
	return &dto, nil
}

// Login xác thực id/pw và cấp access token
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidUserInput, err)
	}

	u, err := s.repo.FindByID(ctx, req.ID)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(u.ID, u.Name)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        u.ToDTO(),
	}, nil
}
