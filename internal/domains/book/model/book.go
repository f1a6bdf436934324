package model

import "time"

// Book - Domain Entity (from database)
type Book struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Description string  `json:"description" db:"description"`
	Content     string  `json:"content" db:"content"`
	UserID      string  `json:"user_id" db:"user_id"`
	CategoryID  int64   `json:"category_id" db:"category_id"`
	CoverURL    *string `json:"cover_url" db:"cover_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined data (chỉ có khi query JOIN)
	UserName     string `json:"user_name" db:"user_name"`
	CategoryName string `json:"category_name" db:"category_name"`
}

// HasCover cover_url chỉ được set sau khi artifact đã lưu thành công
func (b *Book) HasCover() bool {
	return b.CoverURL != nil && *b.CoverURL != ""
}

// IsOwnedBy owner không bao giờ đổi sau khi tạo
func (b *Book) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// Owner / Category chỉ cần biết tồn tại hay không
type Owner struct {
	ID   string
	Name string
}

type Category struct {
	ID   int64
	Name string
}

// Page kết quả phân trang, page bắt đầu từ 0
type Page struct {
	Books []Book
	Page  int
	Size  int
	Total int64
}

// TotalPages = ceil(total / size)
func (p Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}
