package service

import (
	"context"
	"time"

	"bookcatalog-backend/internal/domains/category/model"
	"bookcatalog-backend/internal/domains/category/repository"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/logger"
)

const (
	categoriesCacheKey = "categories:all"
	categoriesCacheTTL = time.Hour
)

type Service interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	repo  repository.Repository
	cache cache.Cache
}

func NewCategoryService(repo repository.Repository, c cache.Cache) Service {
	return &categoryService{repo: repo, cache: c}
}

// ListCategories cache-aside, danh sách category hầu như không đổi
func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	found, err := s.cache.Get(ctx, categoriesCacheKey, &cached)
	if err != nil {
		logger.Warn("category cache get failed", map[string]interface{}{"error": err.Error()})
	} else if found {
		return cached, nil
	}

	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, categoriesCacheKey, categories, categoriesCacheTTL); err != nil {
		logger.Warn("category cache set failed", map[string]interface{}{"error": err.Error()})
	}
	return categories, nil
}
