package model

import (
	"fmt"
	"strings"
)

const (
	CacheKeyListPrefix   = "books:list"
	CacheKeySearchPrefix = "books:search"
	CacheKeyDetailPrefix = "books:detail"
)

func ListCacheKey(req PageRequest) string {
	return fmt.Sprintf("%s:%d:%d", CacheKeyListPrefix, req.Page, req.Size)
}

func SearchCacheKey(query string, req PageRequest) string {
	return fmt.Sprintf("%s:%s:%d:%d", CacheKeySearchPrefix, strings.ToLower(query), req.Page, req.Size)
}

func DetailCacheKey(id int64) string {
	return fmt.Sprintf("%s:%d", CacheKeyDetailPrefix, id)
}

// CoverKey tên artifact của một book, extension cố định
func CoverKey(id int64) string {
	return fmt.Sprintf("%d.png", id)
}

// Helper: Convert Book entity to DTO
func ToSummary(b Book) BookSummary {
	return BookSummary{
		BookID:       b.ID,
		Title:        b.Title,
		Description:  b.Description,
		CategoryName: b.CategoryName,
		UserName:     b.UserName,
		ImageURL:     b.CoverURL,
		CreatedAt:    b.CreatedAt,
	}
}

func ToListResponse(p *Page) *BookListResponse {
	books := make([]BookSummary, 0, len(p.Books))
	for _, b := range p.Books {
		books = append(books, ToSummary(b))
	}
	return &BookListResponse{
		Page:       p.Page,
		TotalPages: p.TotalPages(),
		Total:      p.Total,
		Books:      books,
	}
}

func ToDetail(b *Book) *BookDetailResponse {
	return &BookDetailResponse{
		BookID:       b.ID,
		Title:        b.Title,
		Description:  b.Description,
		Content:      b.Content,
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		UserID:       b.UserID,
		UserName:     b.UserName,
		ImageURL:     b.CoverURL,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
