package repository

import (
	"context"

	"blog-backend/internal/domains/blog/model"
)

// =====================================================
// REPOSITORY INTERFACES
// =====================================================

// BlogRepository - data access cho bảng blogs
type BlogRepository interface {
	// List trả về blogs mới nhất trước (post_date DESC, id DESC) và tổng số blogs
	List(ctx context.Context, offset, limit int) ([]model.Blog, int64, error)

	// ListByAuthor trả về blogs của một tác giả theo thứ tự tạo (id ASC)
	ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]model.Blog, int64, error)

	// GetByID returns ErrBlogNotFound nếu không tồn tại
	GetByID(ctx context.Context, id int64) (*model.Blog, error)

	// Create returns ErrAuthorNotFound nếu author_id không tồn tại
	Create(ctx context.Context, blog *model.Blog) error
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id int64) error

	// AdminList lọc theo author/post_date, cùng thứ tự với List
	AdminList(ctx context.Context, filter model.ListFilter, offset, limit int) ([]model.Blog, int64, error)
}

// AuthorRepository - data access cho bảng blog_authors
type AuthorRepository interface {
	// List sắp xếp theo username (phân biệt hoa thường), sau đó id
	List(ctx context.Context, offset, limit int) ([]model.BlogAuthor, int64, error)

	// GetByID returns ErrAuthorNotFound nếu không tồn tại
	GetByID(ctx context.Context, id int64) (*model.BlogAuthor, error)

	// Create returns ErrUserNotFound hoặc ErrAlreadyAuthor
	Create(ctx context.Context, author *model.BlogAuthor) error
	UpdateBio(ctx context.Context, id int64, bio string) error

	// Delete xóa author, blogs và comments của các blogs đó bị xóa theo cascade
	Delete(ctx context.Context, id int64) error
}

// CommentRepository - data access cho bảng blog_comments
type CommentRepository interface {
	// ListByBlog trả về comments của blog theo post_date, id tăng dần
	ListByBlog(ctx context.Context, blogID int64) ([]model.BlogComment, error)

	// Create returns ErrBlogNotFound nếu blog đã bị xóa
	Create(ctx context.Context, comment *model.BlogComment) error
	GetByID(ctx context.Context, id int64) (*model.BlogComment, error)
	Update(ctx context.Context, comment *model.BlogComment) error
	Delete(ctx context.Context, id int64) error

	// AdminList lọc theo author (users.id)/post_date, mới nhất trước
	AdminList(ctx context.Context, filter model.ListFilter, offset, limit int) ([]model.BlogComment, int64, error)
}
