package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/category/model"
	"bookcatalog-backend/pkg/cache"
)

type stubRepo struct {
	calls      int
	categories []model.Category
	err        error
}

func (r *stubRepo) FindAll(context.Context) ([]model.Category, error) {
	r.calls++
	return r.categories, r.err
}

// mapCache giả lập Redis: lưu JSON như RedisCache
type mapCache struct {
	cache.Cache
	data map[string][]byte
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func TestListCategories_CachesResult(t *testing.T) {
	repo := &stubRepo{categories: []model.Category{{CategoryID: 1, Name: "Novel"}, {CategoryID: 2, Name: "Essay"}}}
	svc := NewCategoryService(repo, &mapCache{data: map[string][]byte{}})

	first, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	second, err := svc.ListCategories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
}

func TestListCategories_RepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewCategoryService(&stubRepo{err: boom}, cache.NewNoop())

	_, err := svc.ListCategories(context.Background())
	assert.ErrorIs(t, err, boom)
}
