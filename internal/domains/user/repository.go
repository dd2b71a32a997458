package user

import "context"

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create tạo user mới
	// Returns: ErrUsernameTaken nếu username đã tồn tại
	Create(ctx context.Context, u *User) error

	// CreateWithAuthor tạo user và author profile trong cùng một transaction
	// Set u.AuthorID khi thành công
	CreateWithAuthor(ctx context.Context, u *User, bio string) error

	// FindByID tìm user theo ID (kèm author_id nếu có)
	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByUsername tìm user theo username (dùng cho login)
	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByUsername(ctx context.Context, username string) (*User, error)

	// SetStaff cập nhật quyền admin console
	// Returns: ErrUserNotFound nếu user không tồn tại
	SetStaff(ctx context.Context, username string, isStaff bool) (*User, error)
}
