package model

// Category - nhóm sách, chỉ đọc qua API
type Category struct {
	CategoryID int64  `json:"categoryId" db:"id"`
	Name       string `json:"name" db:"name"`
}
