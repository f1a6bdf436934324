package job

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/internal/shared"
)

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockLookup) CoveredIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	args := m.Called(ctx, ids)
	found, _ := args.Get(0).(map[int64]bool)
	return found, args.Error(1)
}

func newStore(t *testing.T, keys ...string) *storage.LocalStorage {
	t.Helper()
	s, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "covers"))
	require.NoError(t, err)
	for _, k := range keys {
		_, err := s.Save(context.Background(), k, strings.NewReader(k))
		require.NoError(t, err)
	}
	return s
}

func coverTask(t *testing.T, p shared.DeleteCoverPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeDeleteBookCover, data)
}

func storedKeys(t *testing.T, s *storage.LocalStorage) []string {
	t.Helper()
	objects, err := s.List(context.Background())
	require.NoError(t, err)
	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		keys = append(keys, o.Key)
	}
	return keys
}

func TestDeleteCoverHandler_DeletesWhenBookGone(t *testing.T) {
	store := newStore(t, "4.png")
	books := &mockLookup{}
	books.On("FindByID", mock.Anything, int64(4)).Return(nil, model.ErrBookNotFound)

	h := NewDeleteCoverHandler(store, books)
	err := h.ProcessTask(context.Background(), coverTask(t, shared.DeleteCoverPayload{BookID: 4, Key: "4.png", Reason: "deleted"}))
	require.NoError(t, err)
	assert.Empty(t, storedKeys(t, store))

	// artifact đã mất: retry vẫn thành công
	err = h.ProcessTask(context.Background(), coverTask(t, shared.DeleteCoverPayload{BookID: 4, Reason: "deleted"}))
	assert.NoError(t, err)
}

func TestDeleteCoverHandler_KeepsReferencedCover(t *testing.T) {
	store := newStore(t, "4.png")
	ref := "http://localhost:8080/api/books/cover/4"
	books := &mockLookup{}
	books.On("FindByID", mock.Anything, int64(4)).Return(&model.Book{ID: 4, CoverURL: &ref}, nil)

	h := NewDeleteCoverHandler(store, books)
	err := h.ProcessTask(context.Background(), coverTask(t, shared.DeleteCoverPayload{BookID: 4, Key: "4.png", Reason: "rollback"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"4.png"}, storedKeys(t, store))
}

func TestDeleteCoverHandler_LookupErrorRetries(t *testing.T) {
	store := newStore(t, "4.png")
	books := &mockLookup{}
	books.On("FindByID", mock.Anything, int64(4)).Return(nil, assert.AnError)

	h := NewDeleteCoverHandler(store, books)
	err := h.ProcessTask(context.Background(), coverTask(t, shared.DeleteCoverPayload{BookID: 4, Key: "4.png"}))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"4.png"}, storedKeys(t, store))
}

func TestDeleteCoverHandler_BadPayloadSkipsRetry(t *testing.T) {
	h := NewDeleteCoverHandler(newStore(t), &mockLookup{})
	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeDeleteBookCover, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSweepOrphanCovers(t *testing.T) {
	store := newStore(t, "1.png", "2.png", "3.png", "notes.txt")
	books := &mockLookup{}
	books.On("CoveredIDs", mock.Anything, mock.MatchedBy(func(ids []int64) bool {
		return assert.ElementsMatch(t, []int64{1, 2, 3}, ids)
	})).Return(map[int64]bool{2: true}, nil)

	h := NewSweepOrphanCoversHandler(store, books, time.Minute)
	h.now = func() time.Time { return time.Now().Add(time.Hour) }

	removed, err := h.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.ElementsMatch(t, []string{"2.png", "notes.txt"}, storedKeys(t, store))
}

func TestSweepOrphanCovers_SkipsRecentArtifacts(t *testing.T) {
	store := newStore(t, "1.png")
	books := &mockLookup{}

	h := NewSweepOrphanCoversHandler(store, books, time.Hour)

	removed, err := h.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Equal(t, []string{"1.png"}, storedKeys(t, store))
	books.AssertNotCalled(t, "CoveredIDs", mock.Anything, mock.Anything)
}

func TestParseCoverKey(t *testing.T) {
	tests := []struct {
		key  string
		id   int64
		want bool
	}{
		{"42.png", 42, true},
		{"0.png", 0, false},
		{"abc.png", 0, false},
		{"42.jpg", 0, false},
	}
	for _, tt := range tests {
		id, ok := parseCoverKey(tt.key)
		assert.Equal(t, tt.want, ok, tt.key)
		assert.Equal(t, tt.id, id, tt.key)
	}
}
