package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/pkg/cache"
)

// mapCache lưu JSON như Redis để bắt lỗi serialize
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

var _ cache.Cache = (*mapCache)(nil)

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mapCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mapCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *mapCache) Ping(context.Context) error { return nil }

func (m *mapCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

func cachedFixture(t *testing.T) (*fixture, *mapCache) {
	t.Helper()
	f := newFixture(t)
	c := newMapCache()
	covers := NewCoverService(f.store, CoverConfig{
		BaseURL:        "http://localhost:8080",
		RoutePrefix:    "/api/books/cover/",
		ConnectTimeout: 200 * time.Millisecond,
		ReadTimeout:    200 * time.Millisecond,
		MaxBytes:       1 << 20,
	})
	f.svc = NewBookService(f.repo, f.tx, covers, f.cleaner, c).WithClock(func() time.Time { return fixedNow })
	return f, c
}

func TestListBooks_ServedFromCacheUntilCreate(t *testing.T) {
	f, c := cachedFixture(t)
	ctx := context.Background()
	seedBook(f, "alice", nil)
	page := model.PageRequest{Page: 0, Size: 10}

	first, err := f.svc.ListBooks(ctx, page)
	require.NoError(t, err)
	require.Len(t, first.Books, 1)
	assert.True(t, c.has(model.ListCacheKey(page)))

	// ghi thẳng vào repo, cache không biết
	seedBook(f, "bob", nil)
	queries := f.repo.queries

	stale, err := f.svc.ListBooks(ctx, page)
	require.NoError(t, err)
	assert.Len(t, stale.Books, 1)
	assert.Equal(t, queries, f.repo.queries)

	_, err = f.svc.CreateBook(ctx, "alice", validRequest())
	require.NoError(t, err)
	assert.False(t, c.has(model.ListCacheKey(page)))

	fresh, err := f.svc.ListBooks(ctx, page)
	require.NoError(t, err)
	assert.Len(t, fresh.Books, 3)
	assert.Equal(t, int64(3), fresh.Total)
}

func TestSearchBooks_CacheInvalidatedByDelete(t *testing.T) {
	f, c := cachedFixture(t)
	ctx := context.Background()
	id := seedBook(f, "alice", nil)
	page := model.PageRequest{Page: 0, Size: 10}

	found, err := f.svc.SearchBooks(ctx, "old", page)
	require.NoError(t, err)
	require.Len(t, found.Books, 1)
	assert.True(t, c.has(model.SearchCacheKey("old", page)))

	_, err = f.svc.DeleteBook(ctx, "alice", id)
	require.NoError(t, err)
	assert.False(t, c.has(model.SearchCacheKey("old", page)))

	empty, err := f.svc.SearchBooks(ctx, "old", page)
	require.NoError(t, err)
	assert.Empty(t, empty.Books)
}

func TestGetBookDetail_CacheInvalidatedByUpdate(t *testing.T) {
	f, c := cachedFixture(t)
	ctx := context.Background()
	id := seedBook(f, "alice", nil)

	before, err := f.svc.GetBookDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Old title", before.Title)
	assert.True(t, c.has(model.DetailCacheKey(id)))

	queries := f.repo.queries
	again, err := f.svc.GetBookDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Title, again.Title)
	assert.Equal(t, queries, f.repo.queries)

	_, err = f.svc.UpdateBook(ctx, "alice", id, updateRequest())
	require.NoError(t, err)
	assert.False(t, c.has(model.DetailCacheKey(id)))

	after, err := f.svc.GetBookDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New title", after.Title)
	assert.Equal(t, "Science", after.CategoryName)
}

func TestListBooks_InvalidPageNotCached(t *testing.T) {
	f, c := cachedFixture(t)

	_, err := f.svc.ListBooks(context.Background(), model.PageRequest{Page: 1, Size: 1000})
	require.Error(t, err)
	assert.Empty(t, c.data)
}

// read cũ có thể ghi đè sau invalidate, TTL giới hạn thời gian list/detail bị stale
func TestCachedReads_ShortTTL(t *testing.T) {
	f, c := cachedFixture(t)
	ctx := context.Background()
	id := seedBook(f, "alice", nil)
	page := model.PageRequest{Page: 0, Size: 10}

	_, err := f.svc.ListBooks(ctx, page)
	require.NoError(t, err)
	_, err = f.svc.SearchBooks(ctx, "old", page)
	require.NoError(t, err)
	_, err = f.svc.GetBookDetail(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, c.ttls[model.ListCacheKey(page)])
	assert.Equal(t, 30*time.Second, c.ttls[model.SearchCacheKey("old", page)])
	assert.Equal(t, time.Minute, c.ttls[model.DetailCacheKey(id)])
}
