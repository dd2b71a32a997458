package main

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/domains/user"
	"blog-backend/pkg/container"
)

type seedStats struct {
	authors  int
	blogs    int
	comments int
}

var seedAuthors = []struct {
	username string
	bio      string
}{
	{"Bob", "Backend developer who writes about databases and caching."},
	{"alice", "Loves Go, distributed systems and long walks."},
	{"carol", "Tech lead. Writes short posts about code review."},
}

// seed tạo 3 bloggers, 11 blogs (3 trang) và vài comments của một reader
func seed(ctx context.Context, c *container.Container, password string) (seedStats, error) {
	var stats seedStats
	authorIDs := make([]int64, 0, len(seedAuthors))

	// Step 1: Bloggers
	for _, a := range seedAuthors {
		dto, err := c.UserService.Register(ctx, user.RegisterRequest{
			Username: a.username,
			Password: password,
			Bio:      a.bio,
		})
		if err != nil {
			return stats, fmt.Errorf("seed author %s: %w", a.username, err)
		}
		authorIDs = append(authorIDs, *dto.AuthorID)
		stats.authors++
	}

	// Step 2: Blogs, mỗi ngày một bài
	start := time.Now().AddDate(0, 0, -11)
	blogIDs := make([]int64, 0, 11)
	for i := 0; i < 11; i++ {
		blog, err := c.AdminService.CreateBlog(ctx, model.BlogInput{
			Name:        fmt.Sprintf("Notes #%d", i+1),
			Description: fmt.Sprintf("Sample post number %d. Replace me with something worth reading.", i+1),
			PostDate:    start.AddDate(0, 0, i).Format(model.DateLayout),
			AuthorID:    authorIDs[i%len(authorIDs)],
		})
		if err != nil {
			return stats, fmt.Errorf("seed blog %d: %w", i+1, err)
		}
		blogIDs = append(blogIDs, blog.ID)
		stats.blogs++
	}

	// Step 3: Reader comments trên 3 bài mới nhất
	reader, err := c.UserService.Register(ctx, user.RegisterRequest{Username: "reader", Password: password})
	if err != nil {
		return stats, fmt.Errorf("seed reader: %w", err)
	}
	for _, blogID := range blogIDs[len(blogIDs)-3:] {
		_, err := c.BlogService.CreateComment(ctx, reader.ID, blogID, model.CreateCommentRequest{
			Description: "Thanks for writing this up, it answered exactly what I was looking for.",
		})
		if err != nil {
			return stats, fmt.Errorf("seed comment on blog %d: %w", blogID, err)
		}
		stats.comments++
	}

	return stats, nil
}
