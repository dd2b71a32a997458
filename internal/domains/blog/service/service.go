package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/repository"
	"blog-backend/internal/shared/pagination"
	"blog-backend/pkg/cache"
)

// Config cho blog services
type Config struct {
	PageSize  int
	ListTTL   time.Duration
	DetailTTL time.Duration
	Now       func() time.Time // nil = time.Now
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = pagination.DefaultPageSize
	}
	if c.ListTTL <= 0 {
		c.ListTTL = 5 * time.Minute
	}
	if c.DetailTTL <= 0 {
		c.DetailTTL = 5 * time.Minute
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type blogService struct {
	blogRepo    repository.BlogRepository
	authorRepo  repository.AuthorRepository
	commentRepo repository.CommentRepository
	cache       cache.Cache
	invalidate  invalidator
	cfg         Config
}

// NewBlogService - cache có thể nil (tắt cache)
func NewBlogService(
	blogRepo repository.BlogRepository,
	authorRepo repository.AuthorRepository,
	commentRepo repository.CommentRepository,
	c cache.Cache,
	cfg Config,
) ServiceInterface {
	return &blogService{
		blogRepo:    blogRepo,
		authorRepo:  authorRepo,
		commentRepo: commentRepo,
		cache:       c,
		invalidate:  invalidator{cache: c},
		cfg:         cfg.withDefaults(),
	}
}

// =====================================================
// LISTS
// =====================================================

func (s *blogService) ListBlogs(ctx context.Context, page int) (*pagination.Page[model.BlogSummary], error) {
	return readThrough(ctx, s.cache, model.BlogListCacheKey(page), s.cfg.ListTTL, func() (*pagination.Page[model.BlogSummary], error) {
		blogs, total, err := s.blogRepo.List(ctx, pagination.Offset(page, s.cfg.PageSize), s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
		return pagination.New(toBlogSummaries(blogs), page, s.cfg.PageSize, total), nil
	})
}

func (s *blogService) ListBloggers(ctx context.Context, page int) (*pagination.Page[model.BloggerSummary], error) {
	return readThrough(ctx, s.cache, model.BloggerListCacheKey(page), s.cfg.ListTTL, func() (*pagination.Page[model.BloggerSummary], error) {
		authors, total, err := s.authorRepo.List(ctx, pagination.Offset(page, s.cfg.PageSize), s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list bloggers: %w", err)
		}

		items := make([]model.BloggerSummary, len(authors))
		for i := range authors {
			items[i] = model.ToBloggerSummary(&authors[i])
		}
		return pagination.New(items, page, s.cfg.PageSize, total), nil
	})
}

func (s *blogService) ListBlogsByAuthor(ctx context.Context, authorID int64, page int) (*model.AuthorBlogs, error) {
	key := model.AuthorBlogsCacheKey(authorID, page)
	return readThrough(ctx, s.cache, key, s.cfg.ListTTL, func() (*model.AuthorBlogs, error) {
		// Step 1: Author phải tồn tại
		author, err := s.authorRepo.GetByID(ctx, authorID)
		if err != nil {
			return nil, wrapRepoError(err, "get blogger")
		}

		// Step 2: Blogs của author theo thứ tự tạo
		blogs, total, err := s.blogRepo.ListByAuthor(ctx, authorID, pagination.Offset(page, s.cfg.PageSize), s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list blogs by author: %w", err)
		}

		return &model.AuthorBlogs{
			Blogger: model.ToBloggerSummary(author),
			Blogs:   pagination.New(toBlogSummaries(blogs), page, s.cfg.PageSize, total),
		}, nil
	})
}

// =====================================================
// DETAIL
// =====================================================

func (s *blogService) GetBlogDetail(ctx context.Context, blogID int64) (*model.BlogDetail, error) {
	return readThrough(ctx, s.cache, model.BlogDetailCacheKey(blogID), s.cfg.DetailTTL, func() (*model.BlogDetail, error) {
		return loadBlogDetail(ctx, s.blogRepo, s.commentRepo, blogID)
	})
}

func loadBlogDetail(ctx context.Context, blogRepo repository.BlogRepository, commentRepo repository.CommentRepository, blogID int64) (*model.BlogDetail, error) {
	blog, err := blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, wrapRepoError(err, "get blog")
	}

	comments, err := commentRepo.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	return model.ToBlogDetail(blog, comments), nil
}

// =====================================================
// COMMENTS
// =====================================================

func (s *blogService) GetCommentForm(ctx context.Context, blogID int64) (*model.CommentForm, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, wrapRepoError(err, "get blog")
	}
	return model.NewCommentForm(blog), nil
}

func (s *blogService) CreateComment(
	ctx context.Context,
	userID, blogID int64,
	req model.CreateCommentRequest,
) (*model.CommentResponse, error) {
	// Step 1: Blog cha phải tồn tại (404 trước lỗi validation)
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, wrapRepoError(err, "get blog")
	}

	// Step 2: Validate form
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.AsValidationError(err)
	}

	// Step 3: Lưu comment, tác giả là user hiện tại, ngày đăng là hôm nay
	comment := &model.BlogComment{
		Description: req.Description,
		PostDate:    model.DateOnly(s.cfg.Now()),
		AuthorID:    userID,
		BlogID:      blog.ID,
		BlogName:    blog.Name,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, wrapRepoError(err, "create comment")
	}

	// Step 4: Detail của blog đã thay đổi
	s.invalidate.keys(ctx, model.BlogDetailCacheKey(blog.ID))

	resp := model.ToCommentResponse(comment)
	return &resp, nil
}

// =====================================================
// HELPERS
// =====================================================

func toBlogSummaries(blogs []model.Blog) []model.BlogSummary {
	items := make([]model.BlogSummary, len(blogs))
	for i := range blogs {
		items[i] = model.ToBlogSummary(&blogs[i])
	}
	return items
}

// wrapRepoError chuyển lỗi repository thành BlogError phù hợp
func wrapRepoError(err error, op string) error {
	switch {
	case model.IsNotFound(err):
		return model.NewNotFoundError(err)
	case errors.Is(err, model.ErrAlreadyAuthor):
		return model.NewConflictError(err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
