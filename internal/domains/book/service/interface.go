package service

import (
	"context"

	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared"
)

// Service - business logic của book catalog
type Service interface {
	ListBooks(ctx context.Context, req model.PageRequest) (*model.BookListResponse, error)
	SearchBooks(ctx context.Context, title string, req model.PageRequest) (*model.BookListResponse, error)
	GetBookDetail(ctx context.Context, id int64) (*model.BookDetailResponse, error)

	CreateBook(ctx context.Context, userID string, req model.CreateBookRequest) (*model.BookCreateResponse, error)
	UpdateBook(ctx context.Context, userID string, id int64, req model.UpdateBookRequest) (*model.BookUpdateResponse, error)
	DeleteBook(ctx context.Context, userID string, id int64) (*model.DeleteBookResponse, error)

	ExportBooks(ctx context.Context, req model.PageRequest) ([]byte, error)
}

// CoverAcquirer tải ảnh bìa và trả về public reference
type CoverAcquirer interface {
	AcquireCover(ctx context.Context, sourceURL string, bookID int64) (string, error)
}

// CoverCleaner enqueue việc xóa artifact sau khi book bị xóa hoặc transaction rollback
type CoverCleaner interface {
	EnqueueCoverCleanup(ctx context.Context, payload shared.DeleteCoverPayload) error
}
