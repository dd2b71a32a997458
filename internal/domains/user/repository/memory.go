package repository

import (
	"context"
	"sync"
	"time"

	"blog-backend/internal/domains/user"
)

// MemoryRepository là user.Repository trong bộ nhớ, dùng cho tests
type MemoryRepository struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]*user.User
	authorOf map[int64]int64 // userID -> authorID
	bios     map[int64]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:    make(map[int64]*user.User),
		authorOf: make(map[int64]int64),
		bios:     make(map[int64]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(u)
}

func (r *MemoryRepository) CreateWithAuthor(_ context.Context, u *user.User, bio string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.insert(u); err != nil {
		return err
	}
	r.nextID++
	authorID := r.nextID
	r.authorOf[u.ID] = authorID
	r.bios[authorID] = bio
	u.AuthorID = &authorID
	return nil
}

func (r *MemoryRepository) insert(u *user.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return r.withAuthor(u), nil
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return r.withAuthor(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *MemoryRepository) SetStaff(_ context.Context, username string, isStaff bool) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			u.IsStaff = isStaff
			return r.withAuthor(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

// Bio trả về bio của author profile đã tạo qua CreateWithAuthor
func (r *MemoryRepository) Bio(authorID int64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bio, ok := r.bios[authorID]
	return bio, ok
}

func (r *MemoryRepository) withAuthor(u *user.User) *user.User {
	out := *u
	if authorID, ok := r.authorOf[u.ID]; ok {
		out.AuthorID = &authorID
	}
	return &out
}
