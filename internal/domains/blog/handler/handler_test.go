package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/repository"
	"blog-backend/internal/domains/blog/service"
	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"
)

const loginURL = "/accounts/login/"

type testEnv struct {
	router *gin.Engine
	store  *repository.MemoryStore
	jwt    *jwt.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	c := cache.NewMemoryCache()
	now := func() time.Time { return time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC) }

	blogSvc := service.NewBlogService(store.Blogs(), store.Authors(), store.Comments(), c, service.Config{Now: now})
	adminSvc := service.NewAdminService(store.Blogs(), store.Authors(), store.Comments(), c, now)
	h := NewBlogHandler(blogSvc, "Local Library")
	ah := NewAdminHandler(adminSvc)
	jm := jwt.NewManager("test-secret", time.Hour)
	auth := middleware.AuthMiddleware(jm, loginURL)

	r := gin.New()
	blog := r.Group("/blog")
	blog.GET("/", h.Index)
	blog.GET("/blogs/", h.ListBlogs)
	blog.GET("/bloggers/", h.ListBloggers)
	blog.GET("/blog/:id", h.BlogDetail)
	blog.GET("/blogger/:id", h.BlogsByAuthor)
	blog.GET("/blog/:id/create", auth, h.CommentForm)
	blog.POST("/blog/:id/create", auth, h.CreateComment)

	admin := r.Group("/admin", auth, middleware.AdminMiddleware())
	admin.GET("/blogs", ah.ListBlogs)
	admin.GET("/blogs/export", ah.ExportBlogs)
	admin.POST("/blogs", ah.CreateBlog)
	admin.DELETE("/blogs/:id", ah.DeleteBlog)
	admin.GET("/comments", ah.ListComments)

	return &testEnv{router: r, store: store, jwt: jm}
}

func (e *testEnv) author(t *testing.T, username string) int64 {
	t.Helper()
	a := &model.BlogAuthor{UserID: e.store.AddUser(username), Bio: "bio"}
	require.NoError(t, e.store.Authors().Create(context.Background(), a))
	return a.ID
}

func (e *testEnv) blog(t *testing.T, authorID int64, name string, d int) int64 {
	t.Helper()
	b := &model.Blog{Name: name, Description: "text", PostDate: time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC), AuthorID: authorID}
	require.NoError(t, e.store.Blogs().Create(context.Background(), b))
	return b.ID
}

func (e *testEnv) token(t *testing.T, userID int64, username string, staff bool) string {
	t.Helper()
	tok, _, err := e.jwt.GenerateAccessToken(userID, username, staff)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(method, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type pageBody struct {
	Items       []json.RawMessage `json:"items"`
	TotalPages  int               `json:"total_pages"`
	IsPaginated bool              `json:"is_paginated"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// =====================================================
// PUBLIC PAGES
// =====================================================

func TestIndex(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(http.MethodGet, "/blog/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/blog/bloggers/")
}

func TestListBlogs_Pages(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	for i := 1; i <= 11; i++ {
		e.blog(t, a, fmt.Sprintf("b%d", i), i)
	}

	for page, want := range map[int]int{1: 5, 2: 5, 3: 1, 4: 0} {
		w := e.do(http.MethodGet, fmt.Sprintf("/blog/blogs/?page=%d", page), "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var p pageBody
		decode(t, w, &p)
		assert.Len(t, p.Items, want, "page %d", page)
		assert.True(t, p.IsPaginated)
		assert.Equal(t, 3, p.TotalPages)
	}

	// mặc định trang 1
	var p pageBody
	decode(t, e.do(http.MethodGet, "/blog/blogs/", "", nil), &p)
	assert.Len(t, p.Items, 5)
}

func TestListBlogs_InvalidPage(t *testing.T) {
	e := newTestEnv(t)
	for _, q := range []string{"0", "-2", "abc", "99999999999999999999999"} {
		w := e.do(http.MethodGet, "/blog/blogs/?page="+q, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, q)
		env := decode(t, w, nil)
		assert.Equal(t, model.ErrCodeNotFound, env.Error.Code)
	}
}

func TestLists_HugePageIsEmpty(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	for i := 1; i <= 6; i++ {
		e.blog(t, a, fmt.Sprintf("b%d", i), i)
	}

	for _, path := range []string{
		"/blog/blogs/?page=3689348814741910324",
		"/blog/bloggers/?page=3689348814741910324",
		fmt.Sprintf("/blog/bloggers/?page=%d", math.MaxInt),
		fmt.Sprintf("/blog/blogger/%d?page=%d", a, math.MaxInt),
	} {
		w := e.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, path)
	}

	var p pageBody
	decode(t, e.do(http.MethodGet, "/blog/blogs/?page=3689348814741910324", "", nil), &p)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalPages)
}

func TestListBloggers_Pages(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < 7; i++ {
		e.author(t, fmt.Sprintf("user%d", i))
	}

	var p1, p2 pageBody
	decode(t, e.do(http.MethodGet, "/blog/bloggers/", "", nil), &p1)
	decode(t, e.do(http.MethodGet, "/blog/bloggers/?page=2", "", nil), &p2)
	assert.Len(t, p1.Items, 5)
	assert.Len(t, p2.Items, 2)
}

func TestBlogsByAuthor(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	e.blog(t, a, "one", 1)

	w := e.do(http.MethodGet, fmt.Sprintf("/blog/blogger/%d", a), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res model.AuthorBlogs
	decode(t, w, &res)
	assert.Equal(t, "alice", res.Blogger.Username)
	assert.Len(t, res.Blogs.Items, 1)

	for _, path := range []string{"/blog/blogger/999", "/blog/blogger/abc"} {
		w = e.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestBlogDetail(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	id := e.blog(t, a, "one", 1)

	w := e.do(http.MethodGet, fmt.Sprintf("/blog/blog/%d", id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var d model.BlogDetail
	decode(t, w, &d)
	assert.Equal(t, "one", d.Name)
	assert.NotNil(t, d.Comments)

	w = e.do(http.MethodGet, "/blog/blog/12345", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.ErrCodeNotFound, decode(t, w, nil).Error.Code)
}

// =====================================================
// COMMENT SUBMISSION
// =====================================================

func TestCreateComment_Unauthenticated(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	id := e.blog(t, a, "one", 1)
	path := fmt.Sprintf("/blog/blog/%d/create", id)

	w := e.do(http.MethodPost, path, `{"description":"hi"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "login_url")

	w = e.do(http.MethodPost, path, `{"description":"hi"}`, map[string]string{"Accept": "text/html"})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), loginURL+"?next="))

	assert.Equal(t, 0, e.store.CommentCount())
}

func TestCreateComment_APIClient(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	id := e.blog(t, a, "one", 1)
	reader := e.store.AddUser("reader")
	auth := map[string]string{"Authorization": "Bearer " + e.token(t, reader, "reader", false)}
	path := fmt.Sprintf("/blog/blog/%d/create", id)

	w := e.do(http.MethodPost, path, `{"description":"Nice one"}`, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, fmt.Sprintf("/blog/blog/%d", id), w.Header().Get("Location"))

	var cr model.CommentResponse
	decode(t, w, &cr)
	assert.Equal(t, "reader", cr.Author.Username)
	assert.Equal(t, "2024-05-20", cr.PostDate)

	// detail hiển thị comment mới
	var d model.BlogDetail
	decode(t, e.do(http.MethodGet, fmt.Sprintf("/blog/blog/%d", id), "", nil), &d)
	require.Len(t, d.Comments, 1)
	assert.Equal(t, "Nice one", d.Comments[0].Description)
}

func TestCreateComment_BrowserRedirectsToDetail(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	id := e.blog(t, a, "one", 1)
	reader := e.store.AddUser("reader")

	w := e.do(http.MethodPost, fmt.Sprintf("/blog/blog/%d/create", id), `{"description":"hi"}`, map[string]string{
		"Authorization": "Bearer " + e.token(t, reader, "reader", false),
		"Accept":        "text/html",
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("/blog/blog/%d", id), w.Header().Get("Location"))
}

func TestCreateComment_ValidationAndNotFound(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	id := e.blog(t, a, "one", 1)
	reader := e.store.AddUser("reader")
	auth := map[string]string{"Authorization": "Bearer " + e.token(t, reader, "reader", false)}

	w := e.do(http.MethodPost, fmt.Sprintf("/blog/blog/%d/create", id), `{"description":""}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, model.ErrCodeValidation, env.Error.Code)
	assert.Contains(t, string(env.Error.Details), "description")

	long := strings.Repeat("x", model.MaxCommentLength+1)
	w = e.do(http.MethodPost, fmt.Sprintf("/blog/blog/%d/create", id), `{"description":"`+long+`"}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodPost, "/blog/blog/999/create", `{"description":"hi"}`, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 0, e.store.CommentCount())
}

func TestCommentForm(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	id := e.blog(t, a, "one", 1)
	reader := e.store.AddUser("reader")

	w := e.do(http.MethodGet, fmt.Sprintf("/blog/blog/%d/create", id), "", map[string]string{
		"Authorization": "Bearer " + e.token(t, reader, "reader", false),
	})
	require.Equal(t, http.StatusOK, w.Code)
	var form model.CommentForm
	decode(t, w, &form)
	assert.Equal(t, "one", form.Blog.Name)
	assert.Equal(t, model.MaxCommentLength, form.Fields["description"].MaxLength)
}

// =====================================================
// ADMIN
// =====================================================

func TestAdmin_RequiresStaff(t *testing.T) {
	e := newTestEnv(t)
	reader := e.store.AddUser("reader")

	w := e.do(http.MethodGet, "/admin/blogs", "", map[string]string{
		"Authorization": "Bearer " + e.token(t, reader, "reader", false),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodGet, "/admin/blogs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_BlogsListCreateExport(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	e.blog(t, a, "existing", 1)
	staffID := e.store.AddUser("root")
	auth := map[string]string{"Authorization": "Bearer " + e.token(t, staffID, "root", true)}

	w := e.do(http.MethodPost, "/admin/blogs", fmt.Sprintf(`{"name":"Fresh","description":"Body","author_id":%d}`, a), auth)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(http.MethodPost, "/admin/blogs", `{"name":"","description":"Body","author_id":1}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, fmt.Sprintf("/admin/blogs?author=%d&limit=1", a), "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
	assert.Contains(t, w.Body.String(), `"total_pages":2`)

	w = e.do(http.MethodGet, "/admin/blogs?post_date=yesterday", "", auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(http.MethodGet, "/admin/blogs/export", "", auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	wb, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	rows, err := wb.GetRows("Blogs")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestAdmin_DeleteBlog(t *testing.T) {
	e := newTestEnv(t)
	a := e.author(t, "alice")
	id := e.blog(t, a, "gone", 1)
	staffID := e.store.AddUser("root")
	auth := map[string]string{"Authorization": "Bearer " + e.token(t, staffID, "root", true)}

	w := e.do(http.MethodDelete, fmt.Sprintf("/admin/blogs/%d", id), "", auth)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(http.MethodDelete, fmt.Sprintf("/admin/blogs/%d", id), "", auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
