package user

import (
	"time"

	blogmodel "blog-backend/internal/domains/blog/model"
)

// User là account dùng để đăng nhập, bình luận và (nếu có author profile) viết blog
// Match với migration 0001_create_users.sql
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`

	// AuthorID != nil khi user đã đăng ký làm BlogAuthor (LEFT JOIN blog_authors)
	AuthorID *int64 `json:"author_id,omitempty"`
}

// IsAuthor kiểm tra user có author profile không
func (u *User) IsAuthor() bool {
	return u.AuthorID != nil
}

// ToDTO converts entity sang DTO trả về client
func (u *User) ToDTO() UserDTO {
	dto := UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		IsStaff:   u.IsStaff,
		AuthorID:  u.AuthorID,
		CreatedAt: u.CreatedAt,
	}
	if u.AuthorID != nil {
		dto.BloggerURL = blogmodel.BloggerURL(*u.AuthorID)
	}
	return dto
}
