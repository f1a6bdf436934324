package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/book/repository"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/database"
)

// memoryRepo là repository in-memory; memoryTx snapshot state trước mỗi unit of work
// và khôi phục khi fn trả lỗi, giống rollback của Postgres.
type memoryRepo struct {
	mu         sync.Mutex
	books      map[int64]model.Book
	users      map[string]string
	categories map[int64]string
	nextID     int64

	queries int
}

var _ repository.Repository = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		books:      map[int64]model.Book{},
		users:      map[string]string{"alice": "Alice", "bob": "Bob"},
		categories: map[int64]string{1: "Novel", 2: "Science"},
		nextID:     1,
	}
}

func (r *memoryRepo) WithTx(pgx.Tx) repository.Repository { return r }

func (r *memoryRepo) snapshot() map[int64]model.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(map[int64]model.Book, len(r.books))
	for k, v := range r.books {
		if v.CoverURL != nil {
			ref := *v.CoverURL
			v.CoverURL = &ref
		}
		cp[k] = v
	}
	return cp
}

// restore không reset nextID: sequence của Postgres cũng không rollback
func (r *memoryRepo) restore(books map[int64]model.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books = books
}

func (r *memoryRepo) sorted(filter func(model.Book) bool) []model.Book {
	out := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		if filter(b) {
			b.UserName = r.users[b.UserID]
			b.CategoryName = r.categories[b.CategoryID]
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func paginate(books []model.Book, offset, limit int) []model.Book {
	if offset >= len(books) {
		return []model.Book{}
	}
	end := offset + limit
	if end > len(books) {
		end = len(books)
	}
	return books[offset:end]
}

func (r *memoryRepo) FindPage(_ context.Context, offset, limit int) ([]model.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++
	all := r.sorted(func(model.Book) bool { return true })
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *memoryRepo) SearchByTitle(_ context.Context, title string, offset, limit int) ([]model.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++
	q := strings.ToLower(title)
	all := r.sorted(func(b model.Book) bool { return strings.Contains(strings.ToLower(b.Title), q) })
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *memoryRepo) FindByID(_ context.Context, id int64) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++
	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	b.UserName = r.users[b.UserID]
	b.CategoryName = r.categories[b.CategoryID]
	return &b, nil
}

func (r *memoryRepo) Create(_ context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	book.ID = r.nextID
	r.nextID++
	book.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	book.UpdatedAt = book.CreatedAt
	r.books[book.ID] = *book
	return nil
}

func (r *memoryRepo) AttachCover(_ context.Context, id int64, coverURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return model.ErrBookNotFound
	}
	b.CoverURL = &coverURL
	r.books[id] = b
	return nil
}

func (r *memoryRepo) Update(_ context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.books[book.ID]
	if !ok {
		return model.ErrBookNotFound
	}
	existing.Title = book.Title
	existing.Description = book.Description
	existing.Content = book.Content
	existing.CategoryID = book.CategoryID
	existing.CoverURL = book.CoverURL
	existing.UpdatedAt = book.UpdatedAt
	r.books[book.ID] = existing
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *memoryRepo) FindOwner(_ context.Context, userID string) (*model.Owner, error) {
	name, ok := r.users[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &model.Owner{ID: userID, Name: name}, nil
}

func (r *memoryRepo) FindCategory(_ context.Context, id int64) (*model.Category, error) {
	name, ok := r.categories[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	return &model.Category{ID: id, Name: name}, nil
}

func (r *memoryRepo) CoveredIDs(_ context.Context, ids []int64) (map[int64]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := map[int64]bool{}
	for _, id := range ids {
		if b, ok := r.books[id]; ok && b.HasCover() {
			found[id] = true
		}
	}
	return found, nil
}

func (r *memoryRepo) seed(b model.Book) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	r.books[b.ID] = b
	return b.ID
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.books)
}

type memoryTx struct {
	repo      *memoryRepo
	commitErr error
	calls     int
}

func (t *memoryTx) WithTransaction(_ context.Context, fn database.TxFunc) error {
	t.calls++
	books := t.repo.snapshot()
	if err := fn(nil); err != nil {
		t.repo.restore(books)
		return err
	}
	if t.commitErr != nil {
		t.repo.restore(books)
		return fmt.Errorf("%w: %v", database.ErrCommitFailed, t.commitErr)
	}
	return nil
}

type mockCleaner struct {
	mock.Mock
}

func (m *mockCleaner) EnqueueCoverCleanup(ctx context.Context, payload shared.DeleteCoverPayload) error {
	return m.Called(ctx, payload).Error(0)
}
