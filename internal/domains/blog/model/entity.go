package model

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Field limits (đếm theo ký tự, không phải bytes)
const (
	MaxBlogNameLength        = 200
	MaxBlogDescriptionLength = 2000
	MaxBioLength             = 400
	MaxCommentLength         = 1000

	// CommentTitleLength là số ký tự đầu của comment dùng làm tiêu đề hiển thị
	CommentTitleLength = 75
)

// Help texts của form fields
const (
	HelpBlogDescription    = "Enter your blog text here."
	HelpCommentDescription = "Enter comment about the blog here."
	HelpBio                = "Enter your bio details here."
)

// DateLayout là format của post_date trong JSON
const DateLayout = "2006-01-02"

// =====================================================
// ENTITIES
// =====================================================

// BlogAuthor là user đã đăng ký làm tác giả
type BlogAuthor struct {
	ID       int64
	UserID   int64
	Bio      string
	Username string // joined từ users
}

func (a *BlogAuthor) String() string {
	return a.Username
}

func (a *BlogAuthor) AbsoluteURL() string {
	return BloggerURL(a.ID)
}

// Blog là một bài viết, thuộc đúng một BlogAuthor
type Blog struct {
	ID          int64
	Name        string
	Description string
	PostDate    time.Time
	AuthorID    int64

	AuthorUsername string // joined từ blog_authors + users
}

func (b *Blog) String() string {
	return b.Name
}

func (b *Blog) AbsoluteURL() string {
	return BlogURL(b.ID)
}

// BlogComment là comment của một user trên một Blog
type BlogComment struct {
	ID          int64
	Description string
	PostDate    time.Time
	AuthorID    int64 // users.id
	BlogID      int64

	AuthorUsername string
	BlogName       string
}

// String trả về 75 ký tự đầu, thêm "..." nếu dài hơn
func (c *BlogComment) String() string {
	return Truncate(c.Description, CommentTitleLength)
}

// Truncate cắt s còn n ký tự đầu và thêm "..." nếu s dài hơn n
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

func BlogURL(id int64) string {
	return fmt.Sprintf("/blog/blog/%d", id)
}

func BloggerURL(id int64) string {
	return fmt.Sprintf("/blog/blogger/%d", id)
}

// DateOnly bỏ phần giờ, giữ ngày theo timezone của t
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
