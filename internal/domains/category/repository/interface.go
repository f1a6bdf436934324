package repository

import (
	"context"

	"bookcatalog-backend/internal/domains/category/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
}
