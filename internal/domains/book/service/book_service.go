package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/domains/book/repository"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/database"
	"bookcatalog-backend/pkg/logger"
)

// Cache-aside: một read bắt đầu trước commit có thể ghi kết quả cũ sau khi invalidate.
// TTL ngắn giới hạn khoảng stale đó.
const (
	listCacheTTL   = 30 * time.Second
	detailCacheTTL = time.Minute
)

// BookService - Implements Service
type BookService struct {
	repo    repository.Repository
	tx      database.Transactor
	covers  CoverAcquirer
	cleaner CoverCleaner
	cache   cache.Cache
	now     func() time.Time
}

// NewBookService - Constructor with DI. cleaner và cache có thể nil.
func NewBookService(
	repo repository.Repository,
	tx database.Transactor,
	covers CoverAcquirer,
	cleaner CoverCleaner,
	c cache.Cache,
) *BookService {
	if c == nil {
		c = cache.NewNoop()
	}
	return &BookService{
		repo:    repo,
		tx:      tx,
		covers:  covers,
		cleaner: cleaner,
		cache:   c,
		now:     time.Now,
	}
}

// WithClock thay clock dùng để stamp updated_at
func (s *BookService) WithClock(now func() time.Time) *BookService {
	s.now = now
	return s
}

// =========================================================
// READ
// =========================================================

func (s *BookService) ListBooks(ctx context.Context, req model.PageRequest) (*model.BookListResponse, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidPageLimit
	}

	key := model.ListCacheKey(req)
	var cached model.BookListResponse
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	books, total, err := s.repo.FindPage(ctx, req.Offset(), req.Size)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	resp := model.ToListResponse(&model.Page{Books: books, Page: req.Page, Size: req.Size, Total: total})
	s.setCached(ctx, key, resp, listCacheTTL)
	return resp, nil
}

// SearchBooks - query rỗng là lỗi validation, không chạm tới DB
func (s *BookService) SearchBooks(ctx context.Context, title string, req model.PageRequest) (*model.BookListResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, model.ErrBlankSearchQuery
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidPageLimit
	}

	key := model.SearchCacheKey(title, req)
	var cached model.BookListResponse
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	books, total, err := s.repo.SearchByTitle(ctx, title, req.Offset(), req.Size)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	logger.Info("[BookService] Search completed", map[string]interface{}{
		"title": title,
		"total": total,
	})

	resp := model.ToListResponse(&model.Page{Books: books, Page: req.Page, Size: req.Size, Total: total})
	s.setCached(ctx, key, resp, listCacheTTL)
	return resp, nil
}

func (s *BookService) GetBookDetail(ctx context.Context, id int64) (*model.BookDetailResponse, error) {
	key := model.DetailCacheKey(id)
	var cached model.BookDetailResponse
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := model.ToDetail(book)
	s.setCached(ctx, key, resp, detailCacheTTL)
	return resp, nil
}

// =========================================================
// WRITE
// =========================================================

// CreateBook: validate -> user -> category -> insert (có id) -> tải cover theo id -> attach -> commit.
// Tải cover thất bại thì cả transaction rollback, không có row nào còn lại.
func (s *BookService) CreateBook(ctx context.Context, userID string, req model.CreateBookRequest) (*model.BookCreateResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidBookInput, err.Error())
	}

	var (
		bookID      int64
		coverStored bool
	)
	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		repo := s.repo.WithTx(tx)

		owner, err := repo.FindOwner(ctx, userID)
		if err != nil {
			return err
		}
		category, err := repo.FindCategory(ctx, req.CategoryID)
		if err != nil {
			return err
		}

		book := &model.Book{
			Title:       req.Title,
			Description: req.Description,
			Content:     req.Content,
			UserID:      owner.ID,
			CategoryID:  category.ID,
		}
		if err := repo.Create(ctx, book); err != nil {
			return err
		}
		bookID = book.ID

		if !req.HasCover() {
			return nil
		}

		ref, err := s.covers.AcquireCover(ctx, req.ImageURL, book.ID)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrInvalidCoverURL, err)
		}
		coverStored = true

		return repo.AttachCover(ctx, book.ID, ref)
	})
	if err != nil {
		// artifact đã ghi nhưng row không còn: dọn ở background
		if coverStored {
			s.enqueueCleanup(ctx, bookID, "rollback")
		}
		logger.Warn("[BookService] Create failed", map[string]interface{}{
			"user_id": userID,
			"title":   req.Title,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.invalidateLists(ctx)
	logger.Info("[BookService] Book created", map[string]interface{}{
		"book_id":   bookID,
		"user_id":   userID,
		"has_cover": coverStored,
	})
	return &model.BookCreateResponse{BookID: bookID}, nil
}

// UpdateBook thay toàn bộ field. Ownership check trước mọi thay đổi. Cover được tải
// trước câu UPDATE để không giữ row lock trong lúc gọi network.
func (s *BookService) UpdateBook(ctx context.Context, userID string, id int64, req model.UpdateBookRequest) (*model.BookUpdateResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidBookInput, err.Error())
	}

	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		repo := s.repo.WithTx(tx)

		owner, err := repo.FindOwner(ctx, userID)
		if err != nil {
			return err
		}
		book, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !book.IsOwnedBy(owner.ID) {
			return model.ErrForbidden
		}
		category, err := repo.FindCategory(ctx, req.CategoryID)
		if err != nil {
			return err
		}

		book.Title = req.Title
		book.Description = req.Description
		book.Content = req.Content
		book.CategoryID = category.ID
		book.UpdatedAt = s.now()

		// URL rỗng giữ nguyên cover hiện tại
		if req.HasCover() {
			ref, err := s.covers.AcquireCover(ctx, req.ImageURL, book.ID)
			if err != nil {
				return fmt.Errorf("%w: %w", model.ErrInvalidCoverURL, err)
			}
			book.CoverURL = &ref
		}

		return repo.Update(ctx, book)
	})
	// update lỗi không enqueue cleanup: {id}.png có thể thuộc một update khác chưa commit, sweep sẽ dọn
	if err != nil {
		logger.Warn("[BookService] Update failed", map[string]interface{}{
			"book_id": id,
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.invalidateBook(ctx, id)
	logger.Info("[BookService] Book updated", map[string]interface{}{"book_id": id, "user_id": userID})
	return &model.BookUpdateResponse{BookID: id}, nil
}

// DeleteBook - chỉ owner được xóa, artifact được dọn sau khi commit
func (s *BookService) DeleteBook(ctx context.Context, userID string, id int64) (*model.DeleteBookResponse, error) {
	var hadCover bool
	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		repo := s.repo.WithTx(tx)

		owner, err := repo.FindOwner(ctx, userID)
		if err != nil {
			return err
		}
		book, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !book.IsOwnedBy(owner.ID) {
			return model.ErrForbidden
		}
		hadCover = book.HasCover()

		return repo.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	if hadCover {
		s.enqueueCleanup(ctx, id, "deleted")
	}
	s.invalidateBook(ctx, id)
	logger.Info("[BookService] Book deleted", map[string]interface{}{"book_id": id, "user_id": userID})
	return &model.DeleteBookResponse{BookID: id, DeletedCount: 1}, nil
}

// =========================================================
// HELPERS
// =========================================================

func (s *BookService) enqueueCleanup(ctx context.Context, bookID int64, reason string) {
	if s.cleaner == nil || bookID == 0 {
		return
	}
	payload := shared.DeleteCoverPayload{BookID: bookID, Key: model.CoverKey(bookID), Reason: reason}
	if err := s.cleaner.EnqueueCoverCleanup(context.WithoutCancel(ctx), payload); err != nil {
		logger.Error("[BookService] Failed to enqueue cover cleanup", err)
	}
}

func (s *BookService) getCached(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("[BookService] Cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return found
}

func (s *BookService) setCached(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("[BookService] Cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *BookService) invalidateBook(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, model.DetailCacheKey(id)); err != nil {
		logger.Warn("[BookService] Cache delete failed", map[string]interface{}{"book_id": id, "error": err.Error()})
	}
	s.invalidateLists(ctx)
}

func (s *BookService) invalidateLists(ctx context.Context) {
	for _, prefix := range []string{model.CacheKeyListPrefix, model.CacheKeySearchPrefix} {
		if err := s.cache.DeletePattern(ctx, prefix+":*"); err != nil {
			logger.Warn("[BookService] Cache invalidation failed", map[string]interface{}{"pattern": prefix, "error": err.Error()})
		}
	}
}
