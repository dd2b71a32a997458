package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/blog/repository"
	"blog-backend/pkg/cache"
)

var today = time.Date(2024, 5, 20, 15, 4, 5, 0, time.UTC)

type fixture struct {
	store *repository.MemoryStore
	cache *cache.MemoryCache
	svc   ServiceInterface
	admin AdminServiceInterface
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	c := cache.NewMemoryCache()
	now := func() time.Time { return today }

	return &fixture{
		store: store,
		cache: c,
		svc:   NewBlogService(store.Blogs(), store.Authors(), store.Comments(), c, Config{Now: now}),
		admin: NewAdminService(store.Blogs(), store.Authors(), store.Comments(), c, now),
	}
}

func (f *fixture) author(t *testing.T, username string) int64 {
	t.Helper()
	a := &model.BlogAuthor{UserID: f.store.AddUser(username), Bio: "bio of " + username}
	require.NoError(t, f.store.Authors().Create(context.Background(), a))
	return a.ID
}

func (f *fixture) blog(t *testing.T, authorID int64, name string, postDate time.Time) int64 {
	t.Helper()
	b := &model.Blog{Name: name, Description: "text", PostDate: postDate, AuthorID: authorID}
	require.NoError(t, f.store.Blogs().Create(context.Background(), b))
	return b.ID
}

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

// =====================================================
// LIST BLOGS
// =====================================================

func TestListBlogs_PaginatesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.author(t, "alice")
	for i := 1; i <= 11; i++ {
		f.blog(t, a, fmt.Sprintf("blog-%02d", i), day(i))
	}

	p1, err := f.svc.ListBlogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, p1.Items, 5)
	assert.Equal(t, "blog-11", p1.Items[0].Name)
	assert.Equal(t, "blog-07", p1.Items[4].Name)
	assert.True(t, p1.IsPaginated)
	assert.Equal(t, 3, p1.TotalPages)

	p2, err := f.svc.ListBlogs(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, p2.Items, 5)

	p3, err := f.svc.ListBlogs(ctx, 3)
	require.NoError(t, err)
	require.Len(t, p3.Items, 1)
	assert.Equal(t, "blog-01", p3.Items[0].Name)
	assert.False(t, p3.HasNext)

	p9, err := f.svc.ListBlogs(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, p9.Items)
}

func TestListBlogs_SameDateNewerIDFirst(t *testing.T) {
	f := newFixture(t)
	a := f.author(t, "alice")
	first := f.blog(t, a, "first", day(3))
	second := f.blog(t, a, "second", day(3))

	p, err := f.svc.ListBlogs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	assert.Equal(t, second, p.Items[0].ID)
	assert.Equal(t, first, p.Items[1].ID)
	assert.Equal(t, "alice", p.Items[0].Author.Username)
}

func TestListBlogs_Empty(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.ListBlogs(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.False(t, p.IsPaginated)
}

func TestListBlogs_ServedFromCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.author(t, "alice")
	f.blog(t, a, "cached", day(1))

	_, err := f.svc.ListBlogs(ctx, 1)
	require.NoError(t, err)

	// Ghi thẳng vào store, bỏ qua service: trang vẫn lấy từ cache
	f.blog(t, a, "uncached", day(2))
	p, err := f.svc.ListBlogs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 1)

	require.NoError(t, f.cache.DeletePattern(ctx, model.CachePatternBlogList))
	p, err = f.svc.ListBlogs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 2)
}

// =====================================================
// LIST BLOGGERS
// =====================================================

func TestListBloggers_CaseSensitiveUsernameOrder(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"zed", "Bob", "amy", "Carl", "bea", "Ann", "dan"} {
		f.author(t, name)
	}

	p1, err := f.svc.ListBloggers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, p1.Items, 5)

	var names []string
	for _, b := range p1.Items {
		names = append(names, b.Username)
	}
	assert.Equal(t, []string{"Ann", "Bob", "Carl", "amy", "bea"}, names)

	p2, err := f.svc.ListBloggers(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, p2.Items, 2)
	assert.Equal(t, "dan", p2.Items[0].Username)
	assert.Equal(t, "zed", p2.Items[1].Username)
	assert.Equal(t, fmt.Sprintf("/blog/blogger/%d", p2.Items[0].ID), p2.Items[0].URL)
}

// =====================================================
// BLOGS BY AUTHOR
// =====================================================

func TestListBlogsByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.author(t, "alice")
	bob := f.author(t, "bob")

	// post_date giảm dần nhưng list theo author vẫn theo thứ tự tạo
	var ids []int64
	for i := 0; i < 6; i++ {
		ids = append(ids, f.blog(t, alice, fmt.Sprintf("a%d", i), day(20-i)))
	}
	f.blog(t, bob, "b0", day(1))

	res, err := f.svc.ListBlogsByAuthor(ctx, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Blogger.Username)
	require.Len(t, res.Blogs.Items, 5)
	assert.Equal(t, ids[0], res.Blogs.Items[0].ID)
	assert.Equal(t, ids[4], res.Blogs.Items[4].ID)
	assert.EqualValues(t, 6, res.Blogs.TotalItems)

	res, err = f.svc.ListBlogsByAuthor(ctx, alice, 2)
	require.NoError(t, err)
	require.Len(t, res.Blogs.Items, 1)
	assert.Equal(t, ids[5], res.Blogs.Items[0].ID)
}

func TestListBlogsByAuthor_NoBlogs(t *testing.T) {
	f := newFixture(t)
	a := f.author(t, "quiet")

	res, err := f.svc.ListBlogsByAuthor(context.Background(), a, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Blogs.Items)
}

func TestListBlogsByAuthor_UnknownAuthor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListBlogsByAuthor(context.Background(), 999, 1)
	var be *model.BlogError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, model.ErrCodeNotFound, be.Code)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

// =====================================================
// DETAIL
// =====================================================

func TestGetBlogDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.author(t, "alice")
	id := f.blog(t, a, "post", day(1))

	reader := f.store.AddUser("reader")
	require.NoError(t, f.store.Comments().Create(ctx, &model.BlogComment{Description: "later", PostDate: day(3), AuthorID: reader, BlogID: id}))
	require.NoError(t, f.store.Comments().Create(ctx, &model.BlogComment{Description: "earlier", PostDate: day(2), AuthorID: reader, BlogID: id}))

	detail, err := f.svc.GetBlogDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "post", detail.Name)
	assert.Equal(t, "alice", detail.Author.Username)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "earlier", detail.Comments[0].Description)
	assert.Equal(t, "reader", detail.Comments[0].Author.Username)

	_, err = f.svc.GetBlogDetail(ctx, 999)
	assert.True(t, model.IsNotFound(err))
}

// =====================================================
// CREATE COMMENT
// =====================================================

func TestCreateComment_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.author(t, "alice")
	id := f.blog(t, a, "post", day(1))
	reader := f.store.AddUser("reader")

	// detail được cache trước khi comment
	before, err := f.svc.GetBlogDetail(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, before.Comments)

	resp, err := f.svc.CreateComment(ctx, reader, id, model.CreateCommentRequest{Description: "Great!"})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-20", resp.PostDate)
	assert.Equal(t, "reader", resp.Author.Username)
	assert.Equal(t, id, resp.BlogID)

	after, err := f.svc.GetBlogDetail(ctx, id)
	require.NoError(t, err)
	require.Len(t, after.Comments, 1)
	assert.Equal(t, "Great!", after.Comments[0].Description)
}

func TestCreateComment_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.author(t, "alice")
	id := f.blog(t, a, "post", day(1))
	reader := f.store.AddUser("reader")

	for _, desc := range []string{"", "   \n\t ", " ", strings.Repeat("x", model.MaxCommentLength+1)} {
		_, err := f.svc.CreateComment(ctx, reader, id, model.CreateCommentRequest{Description: desc})
		var be *model.BlogError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, model.ErrCodeValidation, be.Code)
	}
	assert.Equal(t, 0, f.store.CommentCount())

	_, err := f.svc.CreateComment(ctx, reader, id, model.CreateCommentRequest{Description: strings.Repeat("x", model.MaxCommentLength)})
	assert.NoError(t, err)
}

func TestCreateComment_TrimsDescription(t *testing.T) {
	f := newFixture(t)
	a := f.author(t, "alice")
	id := f.blog(t, a, "post", day(1))
	reader := f.store.AddUser("reader")

	c, err := f.svc.CreateComment(context.Background(), reader, id, model.CreateCommentRequest{Description: "  nice post \n"})
	require.NoError(t, err)
	assert.Equal(t, "nice post", c.Description)

	detail, err := f.svc.GetBlogDetail(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "nice post", detail.Comments[0].Description)
}

func TestCreateComment_UnknownBlog(t *testing.T) {
	f := newFixture(t)
	reader := f.store.AddUser("reader")

	_, err := f.svc.CreateComment(context.Background(), reader, 42, model.CreateCommentRequest{Description: "hi"})
	assert.ErrorIs(t, err, model.ErrBlogNotFound)
	assert.Equal(t, 0, f.store.CommentCount())
}

func TestGetCommentForm(t *testing.T) {
	f := newFixture(t)
	a := f.author(t, "alice")
	id := f.blog(t, a, "post", day(1))

	form, err := f.svc.GetCommentForm(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "post", form.Blog.Name)
	assert.Equal(t, model.HelpCommentDescription, form.Fields["description"].HelpText)

	_, err = f.svc.GetCommentForm(context.Background(), 404)
	assert.True(t, model.IsNotFound(err))
}

// =====================================================
// CACHE FAILURES
// =====================================================

type brokenCache struct{ cache.Cache }

func (brokenCache) Get(context.Context, string, interface{}) (bool, error) {
	return false, fmt.Errorf("connection refused")
}

func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return fmt.Errorf("connection refused")
}

func TestReadThrough_FallsBackWhenCacheFails(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewBlogService(store.Blogs(), store.Authors(), store.Comments(), brokenCache{}, Config{})

	a := &model.BlogAuthor{UserID: store.AddUser("alice"), Bio: "b"}
	require.NoError(t, store.Authors().Create(context.Background(), a))

	p, err := svc.ListBloggers(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 1)
}

func TestNilCacheDisablesCaching(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewBlogService(store.Blogs(), store.Authors(), store.Comments(), nil, Config{})

	p, err := svc.ListBlogs(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
}
