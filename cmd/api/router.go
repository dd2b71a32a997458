package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	global := []gin.HandlerFunc{
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	}
	if c.Metrics != nil {
		global = append(global, c.Metrics.Middleware())
	}
	global = append(global, middleware.CORS())
	router.Use(global...)

	// Ops
	router.GET("/health", healthCheckHandler(c))
	if c.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))
	}

	// Trang gốc → trang chủ blog
	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/blog/")
	})

	auth := middleware.AuthMiddleware(c.JWTManager, c.Config.App.LoginURL)

	setupBlogRoutes(router, c, auth)
	setupAccountRoutes(router, c, auth)
	setupAdminRoutes(router, c, auth)

	return router
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(router *gin.Engine, c *container.Container, auth gin.HandlerFunc) {
	blog := router.Group("/blog")
	{
		blog.GET("/", c.BlogHandler.Index)
		blog.GET("/blogs/", c.BlogHandler.ListBlogs)
		blog.GET("/bloggers/", c.BlogHandler.ListBloggers)
		blog.GET("/blog/:id", c.BlogHandler.BlogDetail)
		blog.GET("/blogger/:id", c.BlogHandler.BlogsByAuthor)

		// Comment form (cần đăng nhập)
		blog.GET("/blog/:id/create", auth, c.BlogHandler.CommentForm)
		blog.POST("/blog/:id/create", auth, c.BlogHandler.CreateComment)
	}
}

// ========================================
// ACCOUNT ROUTES
// ========================================
func setupAccountRoutes(router *gin.Engine, c *container.Container, auth gin.HandlerFunc) {
	accounts := router.Group("/accounts")
	{
		accounts.POST("/register", c.UserHandler.Register)
		accounts.GET("/login/", c.UserHandler.LoginForm)
		accounts.POST("/login", c.UserHandler.Login)
		accounts.POST("/logout", c.UserHandler.Logout)
		accounts.GET("/me", auth, c.UserHandler.Me)
	}
}

// ========================================
// ADMIN ROUTES (is_staff)
// ========================================
func setupAdminRoutes(router *gin.Engine, c *container.Container, auth gin.HandlerFunc) {
	admin := router.Group("/admin")
	admin.Use(auth, middleware.AdminMiddleware())

	h := c.AdminHandler

	blogs := admin.Group("/blogs")
	{
		blogs.GET("", h.ListBlogs)
		blogs.GET("/export", h.ExportBlogs)
		blogs.POST("", h.CreateBlog)
		blogs.GET("/:id", h.GetBlog)
		blogs.PUT("/:id", h.UpdateBlog)
		blogs.DELETE("/:id", h.DeleteBlog)
	}

	authors := admin.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.POST("", h.CreateAuthor)
		authors.GET("/:id", h.GetAuthor)
		authors.PUT("/:id", h.UpdateAuthor)
		authors.DELETE("/:id", h.DeleteAuthor)
	}

	comments := admin.Group("/comments")
	{
		comments.GET("", h.ListComments)
		comments.GET("/export", h.ExportComments)
		comments.GET("/:id", h.GetComment)
		comments.PUT("/:id", h.UpdateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
			} else if stats, err := appCtx.DB.Stats(); err == nil {
				health["db_pool"] = stats
			}
		}

		// Check cache (redis hoặc in-memory fallback)
		cacheStatus := "ok"
		switch {
		case appCtx.Cache == nil:
			cacheStatus = "disabled"
		case appCtx.Redis == nil:
			cacheStatus = "in-memory"
		default:
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Redis.HealthCheck(ctx); err != nil {
				cacheStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
