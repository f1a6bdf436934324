package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"bookcatalog-backend/internal/domains/book/model"
)

// Repository - data access cho book và các lookup mà write path cần
// (user, category). WithTx bind repository vào transaction đang chạy.
type Repository interface {
	WithTx(tx pgx.Tx) Repository

	FindPage(ctx context.Context, offset, limit int) ([]model.Book, int64, error)
	SearchByTitle(ctx context.Context, title string, offset, limit int) ([]model.Book, int64, error)
	FindByID(ctx context.Context, id int64) (*model.Book, error)

	// Create set ID, CreatedAt, UpdatedAt vào book
	Create(ctx context.Context, book *model.Book) error
	// AttachCover set cover_url sau khi artifact đã lưu xong
	AttachCover(ctx context.Context, id int64, coverURL string) error
	// Update ghi đè toàn bộ field và cover_url, ErrBookNotFound nếu không có row
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id int64) error

	FindOwner(ctx context.Context, userID string) (*model.Owner, error)
	FindCategory(ctx context.Context, categoryID int64) (*model.Category, error)

	// CoveredIDs lọc ra các id còn tồn tại và đang trỏ tới cover, dùng cho sweep artifact mồ côi
	CoveredIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}
