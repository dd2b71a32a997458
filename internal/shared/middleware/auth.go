package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared/response"
	"blog-backend/internal/shared/utils"
	"blog-backend/pkg/jwt"
)

// Context keys do AuthMiddleware set
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextIsStaff  = "is_staff"

	// AccessTokenCookie là cookie mà login set cho browser clients
	AccessTokenCookie = "access_token"
)

// TokenValidator là phần của jwt.Manager mà middleware cần
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware - Middleware xác thực JWT token
// Token lấy từ "Authorization: Bearer <token>" hoặc cookie access_token.
// Chưa đăng nhập: browser bị redirect 302 tới loginURL?next=<path>,
// API client nhận 401 với login_url trong details.
func AuthMiddleware(validator TokenValidator, loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token
		token, ok := extractToken(c)
		if !ok {
			rejectUnauthenticated(c, loginURL, "authentication required")
			return
		}

		// 2. Verify và parse JWT
		claims, err := validator.ValidateAccessToken(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ContextRequestID)).Msg("invalid access token")
			rejectUnauthenticated(c, loginURL, "invalid or expired token")
			return
		}

		// 3. Set identity vào context
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextIsStaff, claims.IsStaff)

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func rejectUnauthenticated(c *gin.Context, loginURL, message string) {
	target := utils.LoginRedirectURL(loginURL, c.Request.URL.RequestURI())

	if utils.AcceptsHTML(c) {
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return
	}

	response.ErrorWithDetails(c, http.StatusUnauthorized, "UNAUTHORIZED", message, gin.H{
		"login_url": target,
	})
	c.Abort()
}

// GetUserID lấy user id do AuthMiddleware set
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
