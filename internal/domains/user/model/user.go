package model

import "time"

// User - tài khoản đăng nhập, id do người dùng tự chọn khi signup
type User struct {
	ID           string    `json:"userId" db:"id"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ToDTO bỏ các field nhạy cảm
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		UserID:    u.ID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
