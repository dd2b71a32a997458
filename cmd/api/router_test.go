package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/config"
	blogHandler "blog-backend/internal/domains/blog/handler"
	blogRepo "blog-backend/internal/domains/blog/repository"
	blogService "blog-backend/internal/domains/blog/service"
	userHandler "blog-backend/internal/domains/user/handler"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/container"
	"blog-backend/pkg/jwt"
)

// newTestContainer dựng container với repositories in-memory, không có DB/Redis
func newTestContainer(t *testing.T) (*container.Container, *blogRepo.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := blogRepo.NewMemoryStore()
	c := cache.NewMemoryCache()
	jm := jwt.NewManager("router-secret", time.Hour)
	reg := prometheus.NewRegistry()

	cfg := &config.Config{App: config.AppConfig{
		Name:     "Local Library",
		Version:  "test",
		LoginURL: "/accounts/login/",
	}}

	blogSvc := blogService.NewBlogService(store.Blogs(), store.Authors(), store.Comments(), c, blogService.Config{})
	adminSvc := blogService.NewAdminService(store.Blogs(), store.Authors(), store.Comments(), c, nil)
	userSvc := userService.NewUserService(userRepo.NewMemoryRepository(), jm, c, bcrypt.MinCost)

	return &container.Container{
		Config:       cfg,
		Cache:        c,
		JWTManager:   jm,
		Registry:     reg,
		Metrics:      middleware.NewHTTPMetrics(reg),
		BlogService:  blogSvc,
		AdminService: adminSvc,
		UserService:  userSvc,
		BlogHandler:  blogHandler.NewBlogHandler(blogSvc, cfg.App.Name),
		AdminHandler: blogHandler.NewAdminHandler(adminSvc),
		UserHandler:  userHandler.NewUserHandler(userSvc, cfg.App.LoginURL, false),
	}, store
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	c, _ := newTestContainer(t)
	r := SetupRouter(c)

	for _, path := range []string{"/blog/", "/blog/blogs/", "/blog/bloggers/", "/accounts/login/"} {
		w := serve(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID), path)
	}

	w := serve(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/blog/", w.Header().Get("Location"))

	w = serve(r, http.MethodGet, "/blog/blog/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CommentRequiresLogin(t *testing.T) {
	c, store := newTestContainer(t)
	r := SetupRouter(c)

	w := serve(r, http.MethodGet, "/blog/blog/1/create", map[string]string{"Accept": "text/html"})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/accounts/login/?next=%2Fblog%2Fblog%2F1%2Fcreate", w.Header().Get("Location"))

	userID := store.AddUser("reader")
	token, _, err := c.JWTManager.GenerateAccessToken(userID, "reader", false)
	require.NoError(t, err)

	w = serve(r, http.MethodGet, "/blog/blog/1/create", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AdminGuard(t *testing.T) {
	c, store := newTestContainer(t)
	r := SetupRouter(c)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/admin/blogs", nil).Code)

	readerID := store.AddUser("reader")
	token, _, err := c.JWTManager.GenerateAccessToken(readerID, "reader", false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden,
		serve(r, http.MethodGet, "/admin/authors", map[string]string{"Authorization": "Bearer " + token}).Code)

	staffID := store.AddUser("root")
	token, _, err = c.JWTManager.GenerateAccessToken(staffID, "root", true)
	require.NoError(t, err)
	for _, path := range []string{"/admin/blogs", "/admin/authors", "/admin/comments"} {
		w := serve(r, http.MethodGet, path, map[string]string{"Authorization": "Bearer " + token})
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_HealthWithoutDatabase(t *testing.T) {
	c, _ := newTestContainer(t)
	r := SetupRouter(c)

	w := serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disconnected"`)
	assert.Contains(t, w.Body.String(), `"cache":"in-memory"`)
}

func TestRouter_Metrics(t *testing.T) {
	c, _ := newTestContainer(t)
	r := SetupRouter(c)

	serve(r, http.MethodGet, "/blog/blogs/", nil)

	w := serve(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "blog_http_requests_total"), "metrics body")
	assert.Contains(t, body, fmt.Sprintf(`route="%s"`, "/blog/blogs/"))
}
