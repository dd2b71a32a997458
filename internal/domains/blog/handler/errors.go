package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/pagination"
	"blog-backend/internal/shared/response"
)

// mapBlogError maps domain error to HTTP status code
func mapBlogError(err error) int {
	var blogErr *model.BlogError
	if errors.As(err, &blogErr) {
		switch blogErr.Code {
		case model.ErrCodeNotFound:
			return http.StatusNotFound
		case model.ErrCodeValidation:
			return http.StatusBadRequest
		case model.ErrCodeConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// respondError ghi error envelope, lỗi 5xx được log và ẩn chi tiết
func respondError(c *gin.Context, err error) {
	status := mapBlogError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		_ = c.Error(err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	var blogErr *model.BlogError
	errors.As(err, &blogErr)
	response.ErrorWithDetails(c, status, blogErr.Code, blogErr.Message, blogErr.Details)
}

// parseID đọc path param id; id không hợp lệ coi như không tồn tại
func parseID(c *gin.Context, notFound error) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, model.NewNotFoundError(notFound))
		return 0, false
	}
	return id, true
}

// parsePage đọc ?page, sai format trả về 404 giống trang không tồn tại
func parsePage(c *gin.Context) (int, bool) {
	page, err := pagination.ParsePage(c.Query("page"))
	if err != nil {
		respondError(c, model.NewNotFoundError(err))
		return 0, false
	}
	return page, true
}
