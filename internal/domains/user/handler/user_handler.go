package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/user"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
)

// UserHandler xử lý HTTP requests cho accounts
type UserHandler struct {
	service      user.Service
	loginURL     string
	secureCookie bool
	now          func() time.Time
}

// NewUserHandler tạo handler instance
// secureCookie = true trong production (cookie chỉ gửi qua HTTPS)
func NewUserHandler(service user.Service, loginURL string, secureCookie bool) *UserHandler {
	return &UserHandler{
		service:      service,
		loginURL:     loginURL,
		secureCookie: secureCookie,
		now:          time.Now,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /accounts/register
func (h *UserHandler) Register(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// STEP 2: CALL SERVICE (validate + hash + persist)
	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: SUCCESS
	response.Created(c, "/accounts/me", dto)
}

// LoginForm xử lý GET /accounts/login/
// Client chưa đăng nhập bị redirect tới đây với ?next=<path>
func (h *UserHandler) LoginForm(c *gin.Context) {
	form := user.NewLoginFormContext("/accounts/login", utils.SafeNext(c.Query("next")))
	response.Success(c, http.StatusOK, form)
}

// Login xử lý POST /accounts/login
// Token trả trong body và set vào cookie access_token cho browser
func (h *UserHandler) Login(c *gin.Context) {
	// STEP 1: PARSE REQUEST (JSON hoặc form)
	var req user.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// STEP 2: AUTHENTICATE
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: SET COOKIE
	maxAge := int(res.ExpiresAt.Sub(h.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, res.AccessToken, maxAge, "/", "", h.secureCookie, true)

	// STEP 4: Browser quay lại trang đã yêu cầu
	next := utils.SafeNext(req.Next)
	if next != "" && utils.AcceptsHTML(c) {
		c.Redirect(http.StatusFound, next)
		return
	}

	res.Next = next
	response.Success(c, http.StatusOK, res)
}

// Logout xử lý POST /accounts/logout - xóa cookie access_token
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// ========================================
// PROFILE
// ========================================

// Me xử lý GET /accounts/me (cần đăng nhập)
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// handleError map domain errors thành HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	// 400 Bad Request
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)

	// 401 Unauthorized
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())

	// 404 Not Found
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, user.ErrUserNotFound.Error())

	// 409 Conflict
	case errors.Is(err, user.ErrUsernameTaken):
		response.Conflict(c, user.ErrUsernameTaken.Error())
	case errors.Is(err, user.ErrAlreadyAuthor):
		response.Conflict(c, user.ErrAlreadyAuthor.Error())

	// 500 Internal Server Error
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Str("path", c.Request.URL.Path).
			Msg("accounts request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
