package middleware

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/response"
)

// AdminMiddleware chỉ cho phép staff users, phải đặt sau AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsStaff) {
			response.Forbidden(c, "Access denied: staff account required")
			c.Abort()
			return
		}

		c.Next()
	}
}
