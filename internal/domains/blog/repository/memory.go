package repository

import (
	"context"
	"sort"
	"sync"

	"blog-backend/internal/domains/blog/model"
)

// MemoryStore là implementation in-memory của cả ba repository, cùng thứ tự sắp xếp
// và cascade với bản Postgres. Dùng trong tests của service và handler.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[int64]string
	authors  map[int64]model.BlogAuthor
	blogs    map[int64]model.Blog
	comments map[int64]model.BlogComment
	nextID   int64
}

var (
	_ BlogRepository    = (*MemoryBlogRepository)(nil)
	_ AuthorRepository  = (*MemoryAuthorRepository)(nil)
	_ CommentRepository = (*MemoryCommentRepository)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]string),
		authors:  make(map[int64]model.BlogAuthor),
		blogs:    make(map[int64]model.Blog),
		comments: make(map[int64]model.BlogComment),
	}
}

type (
	MemoryBlogRepository    struct{ s *MemoryStore }
	MemoryAuthorRepository  struct{ s *MemoryStore }
	MemoryCommentRepository struct{ s *MemoryStore }
)

func (s *MemoryStore) Blogs() *MemoryBlogRepository { return &MemoryBlogRepository{s} }
func (s *MemoryStore) Authors() *MemoryAuthorRepository { return &MemoryAuthorRepository{s} }
func (s *MemoryStore) Comments() *MemoryCommentRepository { return &MemoryCommentRepository{s} }

func (s *MemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

// AddUser thêm user (bảng users thuộc domain user)
func (s *MemoryStore) AddUser(username string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.users[id] = username
	return id
}

// CommentCount trả về tổng số comments đang có
func (s *MemoryStore) CommentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.comments)
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	if limit < 0 || limit > len(items)-offset {
		return items[offset:]
	}
	return items[offset : offset+limit]
}

func (s *MemoryStore) blogWithAuthor(b model.Blog) model.Blog {
	if a, ok := s.authors[b.AuthorID]; ok {
		b.AuthorUsername = s.users[a.UserID]
	}
	return b
}

// =====================================================
// BLOGS
// =====================================================

func (r *MemoryBlogRepository) List(ctx context.Context, offset, limit int) ([]model.Blog, int64, error) {
	return r.AdminList(ctx, model.ListFilter{}, offset, limit)
}

func (r *MemoryBlogRepository) ListByAuthor(_ context.Context, authorID int64, offset, limit int) ([]model.Blog, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var all []model.Blog
	for _, b := range r.s.blogs {
		if b.AuthorID == authorID {
			all = append(all, r.s.blogWithAuthor(b))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *MemoryBlogRepository) AdminList(_ context.Context, filter model.ListFilter, offset, limit int) ([]model.Blog, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var all []model.Blog
	for _, b := range r.s.blogs {
		if filter.AuthorID != nil && b.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.PostDate != nil && !b.PostDate.Equal(*filter.PostDate) {
			continue
		}
		all = append(all, r.s.blogWithAuthor(b))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].PostDate.Equal(all[j].PostDate) {
			return all[i].PostDate.After(all[j].PostDate)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *MemoryBlogRepository) GetByID(_ context.Context, id int64) (*model.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.blogs[id]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	b = r.s.blogWithAuthor(b)
	return &b, nil
}

func (r *MemoryBlogRepository) Create(_ context.Context, blog *model.Blog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[blog.AuthorID]; !ok {
		return model.ErrAuthorNotFound
	}
	blog.ID = r.s.id()
	r.s.blogs[blog.ID] = *blog
	return nil
}

func (r *MemoryBlogRepository) Update(_ context.Context, blog *model.Blog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blogs[blog.ID]; !ok {
		return model.ErrBlogNotFound
	}
	if _, ok := r.s.authors[blog.AuthorID]; !ok {
		return model.ErrAuthorNotFound
	}
	r.s.blogs[blog.ID] = *blog
	return nil
}

func (r *MemoryBlogRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blogs[id]; !ok {
		return model.ErrBlogNotFound
	}
	r.s.deleteBlog(id)
	return nil
}

func (s *MemoryStore) deleteBlog(id int64) {
	delete(s.blogs, id)
	for cid, c := range s.comments {
		if c.BlogID == id {
			delete(s.comments, cid)
		}
	}
}

// =====================================================
// AUTHORS
// =====================================================

func (r *MemoryAuthorRepository) List(_ context.Context, offset, limit int) ([]model.BlogAuthor, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]model.BlogAuthor, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		a.Username = r.s.users[a.UserID]
		all = append(all, a)
	}
	// so sánh byte-wise giống COLLATE "C"
	sort.Slice(all, func(i, j int) bool {
		if all[i].Username != all[j].Username {
			return all[i].Username < all[j].Username
		}
		return all[i].ID < all[j].ID
	})
	return page(all, offset, limit), int64(len(all)), nil
}

func (r *MemoryAuthorRepository) GetByID(_ context.Context, id int64) (*model.BlogAuthor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	a.Username = r.s.users[a.UserID]
	return &a, nil
}

func (r *MemoryAuthorRepository) Create(_ context.Context, author *model.BlogAuthor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	username, ok := r.s.users[author.UserID]
	if !ok {
		return model.ErrUserNotFound
	}
	for _, a := range r.s.authors {
		if a.UserID == author.UserID {
			return model.ErrAlreadyAuthor
		}
	}

	author.ID = r.s.id()
	author.Username = username
	r.s.authors[author.ID] = *author
	return nil
}

func (r *MemoryAuthorRepository) UpdateBio(_ context.Context, id int64, bio string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.authors[id]
	if !ok {
		return model.ErrAuthorNotFound
	}
	a.Bio = bio
	r.s.authors[id] = a
	return nil
}

func (r *MemoryAuthorRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	delete(r.s.authors, id)
	for bid, b := range r.s.blogs {
		if b.AuthorID == id {
			r.s.deleteBlog(bid)
		}
	}
	return nil
}

// =====================================================
// COMMENTS
// =====================================================

func (s *MemoryStore) commentWithJoins(c model.BlogComment) model.BlogComment {
	c.AuthorUsername = s.users[c.AuthorID]
	c.BlogName = s.blogs[c.BlogID].Name
	return c
}

func (r *MemoryCommentRepository) ListByBlog(_ context.Context, blogID int64) ([]model.BlogComment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]model.BlogComment, 0)
	for _, c := range r.s.comments {
		if c.BlogID == blogID {
			all = append(all, r.s.commentWithJoins(c))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].PostDate.Equal(all[j].PostDate) {
			return all[i].PostDate.Before(all[j].PostDate)
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

func (r *MemoryCommentRepository) Create(_ context.Context, comment *model.BlogComment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blogs[comment.BlogID]; !ok {
		return model.ErrBlogNotFound
	}
	if _, ok := r.s.users[comment.AuthorID]; !ok {
		return model.ErrUserNotFound
	}

	comment.ID = r.s.id()
	r.s.comments[comment.ID] = *comment
	*comment = r.s.commentWithJoins(*comment)
	return nil
}

func (r *MemoryCommentRepository) GetByID(_ context.Context, id int64) (*model.BlogComment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	c = r.s.commentWithJoins(c)
	return &c, nil
}

func (r *MemoryCommentRepository) Update(_ context.Context, comment *model.BlogComment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[comment.ID]
	if !ok {
		return model.ErrCommentNotFound
	}
	c.Description = comment.Description
	c.PostDate = comment.PostDate
	r.s.comments[c.ID] = c
	return nil
}

func (r *MemoryCommentRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return model.ErrCommentNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *MemoryCommentRepository) AdminList(_ context.Context, filter model.ListFilter, offset, limit int) ([]model.BlogComment, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var all []model.BlogComment
	for _, c := range r.s.comments {
		if filter.AuthorID != nil && c.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.PostDate != nil && !c.PostDate.Equal(*filter.PostDate) {
			continue
		}
		all = append(all, r.s.commentWithJoins(c))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].PostDate.Equal(all[j].PostDate) {
			return all[i].PostDate.After(all[j].PostDate)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, offset, limit), int64(len(all)), nil
}
