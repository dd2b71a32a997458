package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
)

// =====================================================
// BLOG HANDLER
// =====================================================

type BlogHandler struct {
	blogService service.ServiceInterface
	siteName    string
}

func NewBlogHandler(blogService service.ServiceInterface, siteName string) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		siteName:    siteName,
	}
}

// Index - trang chủ tĩnh
// GET /blog/
func (h *BlogHandler) Index(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"site": h.siteName,
		"links": gin.H{
			"blogs":    "/blog/blogs/",
			"bloggers": "/blog/bloggers/",
		},
	})
}

// ListBlogs - tất cả blogs, mới nhất trước, 5 mỗi trang
// GET /blog/blogs/?page=N
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	result, err := h.blogService.ListBlogs(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListBloggers - tất cả tác giả theo username
// GET /blog/bloggers/?page=N
func (h *BlogHandler) ListBloggers(c *gin.Context) {
	page, ok := parsePage(c)
	if !ok {
		return
	}

	result, err := h.blogService.ListBloggers(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// BlogsByAuthor - blogs của một tác giả
// GET /blog/blogger/:id?page=N
func (h *BlogHandler) BlogsByAuthor(c *gin.Context) {
	authorID, ok := parseID(c, model.ErrAuthorNotFound)
	if !ok {
		return
	}
	page, ok := parsePage(c)
	if !ok {
		return
	}

	result, err := h.blogService.ListBlogsByAuthor(c.Request.Context(), authorID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// BlogDetail - blog cùng comments
// GET /blog/blog/:id
func (h *BlogHandler) BlogDetail(c *gin.Context) {
	blogID, ok := parseID(c, model.ErrBlogNotFound)
	if !ok {
		return
	}

	result, err := h.blogService.GetBlogDetail(c.Request.Context(), blogID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CommentForm - context của form comment (cần đăng nhập)
// GET /blog/blog/:id/create
func (h *BlogHandler) CommentForm(c *gin.Context) {
	blogID, ok := parseID(c, model.ErrBlogNotFound)
	if !ok {
		return
	}

	result, err := h.blogService.GetCommentForm(c.Request.Context(), blogID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CreateComment - gửi comment cho blog (cần đăng nhập)
// POST /blog/blog/:id/create
func (h *BlogHandler) CreateComment(c *gin.Context) {
	// Step 1: User hiện tại (AuthMiddleware đã set)
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	// Step 2: Parse blog ID
	blogID, ok := parseID(c, model.ErrBlogNotFound)
	if !ok {
		return
	}

	// Step 3: Bind body (JSON hoặc form)
	var req model.CreateCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// Step 4: Call service
	comment, err := h.blogService.CreateComment(c.Request.Context(), userID, blogID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	// Step 5: Quay về trang blog
	location := model.BlogURL(blogID)
	if utils.AcceptsHTML(c) {
		c.Redirect(http.StatusFound, location)
		return
	}
	response.Created(c, location, comment)
}
