package model

import (
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage giữ page*size trong int32, OFFSET không bao giờ âm
	MaxPage = math.MaxInt32 / MaxPageSize
	// MaxTitleLength = VARCHAR(255) của cột books.title
	MaxTitleLength = 255
)

// ============ REQUESTS ============

// BookWriteRequest dùng chung cho create và update (update là replace toàn bộ field)
type BookWriteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	CategoryID  int64  `json:"categoryId"`
	ImageURL    string `json:"imageUrl"`
}

type CreateBookRequest = BookWriteRequest
type UpdateBookRequest = BookWriteRequest

// Normalize trim whitespace, field chỉ có khoảng trắng coi như rỗng
func (r *BookWriteRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Content = strings.TrimSpace(r.Content)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

func (r BookWriteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.Description, validation.Required.Error("description is required")),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.ImageURL,
			validation.When(r.ImageURL != "", is.URL.Error("imageUrl must be a valid URL")),
		),
	)
}

// HasCover request có yêu cầu tải ảnh bìa không
func (r BookWriteRequest) HasCover() bool {
	return strings.TrimSpace(r.ImageURL) != ""
}

// PageRequest page bắt đầu từ 0
type PageRequest struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

func (r *PageRequest) ApplyDefaults() {
	if r.Size == 0 {
		r.Size = DefaultPageSize
	}
}

func (r PageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(0), validation.Max(MaxPage)),
		validation.Field(&r.Size, validation.Min(1), validation.Max(MaxPageSize)),
	)
}

func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// ============ RESPONSES ============

type BookSummary struct {
	BookID       int64     `json:"bookId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CategoryName string    `json:"categoryName"`
	UserName     string    `json:"userName"`
	ImageURL     *string   `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BookListResponse struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Total      int64         `json:"total"`
	Books      []BookSummary `json:"books"`
}

type BookDetailResponse struct {
	BookID       int64     `json:"bookId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	CategoryID   int64     `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	ImageURL     *string   `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BookCreateResponse struct {
	BookID int64 `json:"bookId"`
}

type BookUpdateResponse struct {
	BookID int64 `json:"bookId"`
}

type DeleteBookResponse struct {
	BookID       int64 `json:"bookId"`
	DeletedCount int   `json:"deletedCount"`
}
