package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/shared/pagination"
)

// ServiceInterface - các thao tác công khai: đọc blogs/bloggers và gửi comment
type ServiceInterface interface {
	ListBlogs(ctx context.Context, page int) (*pagination.Page[model.BlogSummary], error)
	ListBloggers(ctx context.Context, page int) (*pagination.Page[model.BloggerSummary], error)
	ListBlogsByAuthor(ctx context.Context, authorID int64, page int) (*model.AuthorBlogs, error)
	GetBlogDetail(ctx context.Context, blogID int64) (*model.BlogDetail, error)

	// GetCommentForm trả về context của form comment cho blog
	GetCommentForm(ctx context.Context, blogID int64) (*model.CommentForm, error)
	CreateComment(ctx context.Context, userID, blogID int64, req model.CreateCommentRequest) (*model.CommentResponse, error)
}

// AdminServiceInterface - quản trị blogs, authors, comments
type AdminServiceInterface interface {
	ListBlogs(ctx context.Context, filter model.ListFilter, page, limit int) ([]model.BlogSummary, int64, error)
	GetBlog(ctx context.Context, id int64) (*model.BlogDetail, error)
	CreateBlog(ctx context.Context, req model.BlogInput) (*model.BlogSummary, error)
	UpdateBlog(ctx context.Context, id int64, req model.BlogInput) (*model.BlogSummary, error)
	DeleteBlog(ctx context.Context, id int64) error

	ListAuthors(ctx context.Context, page, limit int) ([]model.BloggerSummary, int64, error)
	GetAuthor(ctx context.Context, id int64) (*model.AuthorDetail, error)
	CreateAuthor(ctx context.Context, req model.AuthorInput) (*model.BloggerSummary, error)
	UpdateAuthor(ctx context.Context, id int64, req model.AuthorBioInput) (*model.BloggerSummary, error)
	DeleteAuthor(ctx context.Context, id int64) error

	ListComments(ctx context.Context, filter model.ListFilter, page, limit int) ([]model.CommentResponse, int64, error)
	GetComment(ctx context.Context, id int64) (*model.CommentResponse, error)
	UpdateComment(ctx context.Context, id int64, req model.CommentInput) (*model.CommentResponse, error)
	DeleteComment(ctx context.Context, id int64) error

	// Export trả về workbook tối đa ExportLimit dòng theo filter
	ExportBlogs(ctx context.Context, filter model.ListFilter) (*excelize.File, error)
	ExportComments(ctx context.Context, filter model.ListFilter) (*excelize.File, error)
}
