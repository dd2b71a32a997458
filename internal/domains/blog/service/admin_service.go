package service

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/repository"
	"blog-backend/internal/shared/pagination"
	"blog-backend/pkg/cache"
)

const (
	// ExportLimit là số dòng tối đa của một file export
	ExportLimit = 10000

	// maxInlineBlogs giới hạn số blogs trả kèm author detail
	maxInlineBlogs = 100
)

// =====================================================
// ADMIN SERVICE
// Quản trị cả ba bảng, mọi thay đổi đều invalidate cache của trang công khai
// =====================================================

type adminService struct {
	blogRepo    repository.BlogRepository
	authorRepo  repository.AuthorRepository
	commentRepo repository.CommentRepository
	invalidate  invalidator
	now         func() time.Time
	exportLimit int
}

func NewAdminService(
	blogRepo repository.BlogRepository,
	authorRepo repository.AuthorRepository,
	commentRepo repository.CommentRepository,
	c cache.Cache,
	now func() time.Time,
) AdminServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &adminService{
		blogRepo:    blogRepo,
		authorRepo:  authorRepo,
		commentRepo: commentRepo,
		invalidate:  invalidator{cache: c},
		now:         now,
		exportLimit: ExportLimit,
	}
}

// =====================================================
// BLOGS
// =====================================================

func (s *adminService) ListBlogs(ctx context.Context, filter model.ListFilter, page, limit int) ([]model.BlogSummary, int64, error) {
	blogs, total, err := s.blogRepo.AdminList(ctx, filter, pagination.Offset(page, limit), limit)
	if err != nil {
		return nil, 0, fmt.Errorf("admin list blogs: %w", err)
	}
	return toBlogSummaries(blogs), total, nil
}

func (s *adminService) GetBlog(ctx context.Context, id int64) (*model.BlogDetail, error) {
	return loadBlogDetail(ctx, s.blogRepo, s.commentRepo, id)
}

func (s *adminService) CreateBlog(ctx context.Context, req model.BlogInput) (*model.BlogSummary, error) {
	blog, err := s.blogFromInput(req)
	if err != nil {
		return nil, err
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, wrapRepoError(err, "create blog")
	}

	s.invalidate.patterns(ctx, model.CachePatternBlogList, model.AuthorBlogsCachePattern(blog.AuthorID))
	return s.blogSummary(ctx, blog.ID)
}

func (s *adminService) UpdateBlog(ctx context.Context, id int64, req model.BlogInput) (*model.BlogSummary, error) {
	blog, err := s.blogFromInput(req)
	if err != nil {
		return nil, err
	}
	blog.ID = id

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, wrapRepoError(err, "update blog")
	}

	// author có thể đã đổi nên xóa toàn bộ trang theo author
	s.invalidate.keys(ctx, model.BlogDetailCacheKey(id))
	s.invalidate.patterns(ctx, model.CachePatternBlogList, model.CachePatternAuthorBlogs)
	return s.blogSummary(ctx, id)
}

func (s *adminService) DeleteBlog(ctx context.Context, id int64) error {
	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, "delete blog")
	}

	s.invalidate.keys(ctx, model.BlogDetailCacheKey(id))
	s.invalidate.patterns(ctx, model.CachePatternBlogList, model.CachePatternAuthorBlogs)
	return nil
}

func (s *adminService) blogFromInput(req model.BlogInput) (*model.Blog, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.AsValidationError(err)
	}

	postDate, err := model.ParseDate(req.PostDate, model.DateOnly(s.now()))
	if err != nil {
		return nil, model.AsValidationError(err)
	}

	return &model.Blog{
		Name:        req.Name,
		Description: req.Description,
		PostDate:    postDate,
		AuthorID:    req.AuthorID,
	}, nil
}

func (s *adminService) blogSummary(ctx context.Context, id int64) (*model.BlogSummary, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, "get blog")
	}
	summary := model.ToBlogSummary(blog)
	return &summary, nil
}

// =====================================================
// AUTHORS
// =====================================================

func (s *adminService) ListAuthors(ctx context.Context, page, limit int) ([]model.BloggerSummary, int64, error) {
	authors, total, err := s.authorRepo.List(ctx, pagination.Offset(page, limit), limit)
	if err != nil {
		return nil, 0, fmt.Errorf("admin list authors: %w", err)
	}

	items := make([]model.BloggerSummary, len(authors))
	for i := range authors {
		items[i] = model.ToBloggerSummary(&authors[i])
	}
	return items, total, nil
}

func (s *adminService) GetAuthor(ctx context.Context, id int64) (*model.AuthorDetail, error) {
	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, "get author")
	}

	blogs, _, err := s.blogRepo.ListByAuthor(ctx, id, 0, maxInlineBlogs)
	if err != nil {
		return nil, fmt.Errorf("list author blogs: %w", err)
	}

	return &model.AuthorDetail{
		BloggerSummary: model.ToBloggerSummary(author),
		UserID:         author.UserID,
		Blogs:          toBlogSummaries(blogs),
	}, nil
}

func (s *adminService) CreateAuthor(ctx context.Context, req model.AuthorInput) (*model.BloggerSummary, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.AsValidationError(err)
	}

	author := &model.BlogAuthor{UserID: req.UserID, Bio: req.Bio}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, wrapRepoError(err, "create author")
	}

	s.invalidate.patterns(ctx, model.CachePatternBloggerList)
	summary := model.ToBloggerSummary(author)
	return &summary, nil
}

func (s *adminService) UpdateAuthor(ctx context.Context, id int64, req model.AuthorBioInput) (*model.BloggerSummary, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.AsValidationError(err)
	}

	if err := s.authorRepo.UpdateBio(ctx, id, req.Bio); err != nil {
		return nil, wrapRepoError(err, "update author")
	}

	s.invalidate.patterns(ctx, model.CachePatternBloggerList, model.AuthorBlogsCachePattern(id))

	author, err := s.authorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, "get author")
	}
	summary := model.ToBloggerSummary(author)
	return &summary, nil
}

// DeleteAuthor xóa author cùng blogs và comments (cascade), nên xóa hết cache công khai
func (s *adminService) DeleteAuthor(ctx context.Context, id int64) error {
	if err := s.authorRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, "delete author")
	}

	s.invalidate.patterns(ctx,
		model.CachePatternBloggerList,
		model.CachePatternBlogList,
		model.CachePatternAuthorBlogs,
		model.CachePatternBlogDetail,
	)
	return nil
}

// =====================================================
// COMMENTS
// =====================================================

func (s *adminService) ListComments(ctx context.Context, filter model.ListFilter, page, limit int) ([]model.CommentResponse, int64, error) {
	comments, total, err := s.commentRepo.AdminList(ctx, filter, pagination.Offset(page, limit), limit)
	if err != nil {
		return nil, 0, fmt.Errorf("admin list comments: %w", err)
	}
	return toCommentResponses(comments), total, nil
}

func (s *adminService) GetComment(ctx context.Context, id int64) (*model.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, "get comment")
	}
	resp := model.ToCommentResponse(comment)
	return &resp, nil
}

func (s *adminService) UpdateComment(ctx context.Context, id int64, req model.CommentInput) (*model.CommentResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.AsValidationError(err)
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, "get comment")
	}

	postDate, err := model.ParseDate(req.PostDate, comment.PostDate)
	if err != nil {
		return nil, model.AsValidationError(err)
	}
	comment.Description = req.Description
	comment.PostDate = postDate

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, wrapRepoError(err, "update comment")
	}

	s.invalidate.keys(ctx, model.BlogDetailCacheKey(comment.BlogID))
	resp := model.ToCommentResponse(comment)
	return &resp, nil
}

func (s *adminService) DeleteComment(ctx context.Context, id int64) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return wrapRepoError(err, "get comment")
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, "delete comment")
	}

	s.invalidate.keys(ctx, model.BlogDetailCacheKey(comment.BlogID))
	return nil
}

func toCommentResponses(comments []model.BlogComment) []model.CommentResponse {
	items := make([]model.CommentResponse, len(comments))
	for i := range comments {
		items[i] = model.ToCommentResponse(&comments[i])
	}
	return items
}
