package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/user/model"
)

// Repository - data access cho users
type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
}
