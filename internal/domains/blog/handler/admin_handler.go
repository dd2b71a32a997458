package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/service"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/response"
)

const (
	adminDefaultLimit = 20
	adminMaxLimit     = 100

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// =====================================================
// ADMIN HANDLER
// Tất cả routes nằm sau AuthMiddleware + AdminMiddleware
// =====================================================

type AdminHandler struct {
	adminService service.AdminServiceInterface
	now          func() time.Time
}

func NewAdminHandler(adminService service.AdminServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService, now: time.Now}
}

// parseListParams đọc page, limit và filters author / post_date
func parseListParams(c *gin.Context) (model.ListFilter, int, int, bool) {
	var filter model.ListFilter
	details := gin.H{}

	page, err := pagination.ParsePage(c.Query("page"))
	if err != nil {
		details["page"] = err.Error()
	}
	limit, err := pagination.ParseLimit(c.Query("limit"), adminDefaultLimit, adminMaxLimit)
	if err != nil {
		details["limit"] = err.Error()
	}

	if raw := c.Query("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			details["author"] = "must be a positive integer"
		} else {
			filter.AuthorID = &id
		}
	}
	if raw := c.Query("post_date"); raw != "" {
		d, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			details["post_date"] = "must be a date in YYYY-MM-DD format"
		} else {
			filter.PostDate = &d
		}
	}

	if len(details) > 0 {
		respondError(c, model.NewValidationError(details))
		return filter, 0, 0, false
	}
	return filter, page, limit, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "invalid request body")
		return false
	}
	return true
}

// =====================================================
// BLOGS
// =====================================================

// ListBlogs GET /admin/blogs?author=&post_date=&page=&limit=
func (h *AdminHandler) ListBlogs(c *gin.Context) {
	filter, page, limit, ok := parseListParams(c)
	if !ok {
		return
	}

	items, total, err := h.adminService.ListBlogs(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(page, limit, total))
}

// GetBlog GET /admin/blogs/:id
func (h *AdminHandler) GetBlog(c *gin.Context) {
	id, ok := parseID(c, model.ErrBlogNotFound)
	if !ok {
		return
	}

	blog, err := h.adminService.GetBlog(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blog)
}

// CreateBlog POST /admin/blogs
func (h *AdminHandler) CreateBlog(c *gin.Context) {
	var req model.BlogInput
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.adminService.CreateBlog(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, fmt.Sprintf("/admin/blogs/%d", blog.ID), blog)
}

// UpdateBlog PUT /admin/blogs/:id
func (h *AdminHandler) UpdateBlog(c *gin.Context) {
	id, ok := parseID(c, model.ErrBlogNotFound)
	if !ok {
		return
	}
	var req model.BlogInput
	if !bindJSON(c, &req) {
		return
	}

	blog, err := h.adminService.UpdateBlog(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blog)
}

// DeleteBlog DELETE /admin/blogs/:id
func (h *AdminHandler) DeleteBlog(c *gin.Context) {
	id, ok := parseID(c, model.ErrBlogNotFound)
	if !ok {
		return
	}

	if err := h.adminService.DeleteBlog(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportBlogs GET /admin/blogs/export
func (h *AdminHandler) ExportBlogs(c *gin.Context) {
	filter, _, _, ok := parseListParams(c)
	if !ok {
		return
	}

	f, err := h.adminService.ExportBlogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeWorkbook(c, f, "blogs")
}

// =====================================================
// AUTHORS
// =====================================================

// ListAuthors GET /admin/authors
func (h *AdminHandler) ListAuthors(c *gin.Context) {
	_, page, limit, ok := parseListParams(c)
	if !ok {
		return
	}

	items, total, err := h.adminService.ListAuthors(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(page, limit, total))
}

// GetAuthor GET /admin/authors/:id
func (h *AdminHandler) GetAuthor(c *gin.Context) {
	id, ok := parseID(c, model.ErrAuthorNotFound)
	if !ok {
		return
	}

	author, err := h.adminService.GetAuthor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, author)
}

// CreateAuthor POST /admin/authors
func (h *AdminHandler) CreateAuthor(c *gin.Context) {
	var req model.AuthorInput
	if !bindJSON(c, &req) {
		return
	}

	author, err := h.adminService.CreateAuthor(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, fmt.Sprintf("/admin/authors/%d", author.ID), author)
}

// UpdateAuthor PUT /admin/authors/:id
func (h *AdminHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseID(c, model.ErrAuthorNotFound)
	if !ok {
		return
	}
	var req model.AuthorBioInput
	if !bindJSON(c, &req) {
		return
	}

	author, err := h.adminService.UpdateAuthor(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, author)
}

// DeleteAuthor DELETE /admin/authors/:id
func (h *AdminHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseID(c, model.ErrAuthorNotFound)
	if !ok {
		return
	}

	if err := h.adminService.DeleteAuthor(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// =====================================================
// COMMENTS
// =====================================================

// ListComments GET /admin/comments?author=&post_date=
func (h *AdminHandler) ListComments(c *gin.Context) {
	filter, page, limit, ok := parseListParams(c)
	if !ok {
		return
	}

	items, total, err := h.adminService.ListComments(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(page, limit, total))
}

// GetComment GET /admin/comments/:id
func (h *AdminHandler) GetComment(c *gin.Context) {
	id, ok := parseID(c, model.ErrCommentNotFound)
	if !ok {
		return
	}

	comment, err := h.adminService.GetComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// UpdateComment PUT /admin/comments/:id
func (h *AdminHandler) UpdateComment(c *gin.Context) {
	id, ok := parseID(c, model.ErrCommentNotFound)
	if !ok {
		return
	}
	var req model.CommentInput
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.adminService.UpdateComment(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comment)
}

// DeleteComment DELETE /admin/comments/:id
func (h *AdminHandler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, model.ErrCommentNotFound)
	if !ok {
		return
	}

	if err := h.adminService.DeleteComment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportComments GET /admin/comments/export
func (h *AdminHandler) ExportComments(c *gin.Context) {
	filter, _, _, ok := parseListParams(c)
	if !ok {
		return
	}

	f, err := h.adminService.ExportComments(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeWorkbook(c, f, "comments")
}

func (h *AdminHandler) writeWorkbook(c *gin.Context, f *excelize.File, name string) {
	defer f.Close()

	filename := fmt.Sprintf("%s_%s.xlsx", name, h.now().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
