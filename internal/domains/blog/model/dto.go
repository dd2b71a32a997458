package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/shared/pagination"
)

// =====================================================
// PUBLIC RESPONSE DTOs
// =====================================================

// AuthorRef là thông tin tác giả gắn kèm blog/comment
type AuthorRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	URL      string `json:"url,omitempty"`
}

// BlogSummary là một dòng trong list blogs
type BlogSummary struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	PostDate string    `json:"post_date"`
	Author   AuthorRef `json:"author"`
	URL      string    `json:"url"`
}

// BloggerSummary là một dòng trong list bloggers
type BloggerSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	URL      string `json:"url"`
}

// CommentResponse là một comment trong blog detail
type CommentResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostDate    string    `json:"post_date"`
	Author      AuthorRef `json:"author"`
	BlogID      int64     `json:"blog_id"`
	BlogName    string    `json:"blog_name,omitempty"`
}

// BlogDetail là blog cùng tác giả và comments
type BlogDetail struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	PostDate    string            `json:"post_date"`
	Author      AuthorRef         `json:"author"`
	URL         string            `json:"url"`
	Comments    []CommentResponse `json:"comments"`
}

// AuthorBlogs là trang blogs của một tác giả, kèm thông tin tác giả
type AuthorBlogs struct {
	Blogger BloggerSummary                `json:"blogger"`
	Blogs   *pagination.Page[BlogSummary] `json:"blogs"`
}

// AuthorDetail là tác giả cùng blogs (admin inline)
type AuthorDetail struct {
	BloggerSummary
	UserID int64         `json:"user_id"`
	Blogs  []BlogSummary `json:"blogs"`
}

// CommentForm là context của form comment
type CommentForm struct {
	Blog   BlogSummary          `json:"blog"`
	Fields map[string]FormField `json:"fields"`
}

type FormField struct {
	Required  bool   `json:"required"`
	MaxLength int    `json:"max_length"`
	HelpText  string `json:"help_text"`
}

// =====================================================
// MAPPERS
// =====================================================

func ToBlogSummary(b *Blog) BlogSummary {
	return BlogSummary{
		ID:       b.ID,
		Name:     b.Name,
		PostDate: b.PostDate.Format(DateLayout),
		Author: AuthorRef{
			ID:       b.AuthorID,
			Username: b.AuthorUsername,
			URL:      BloggerURL(b.AuthorID),
		},
		URL: b.AbsoluteURL(),
	}
}

func ToBloggerSummary(a *BlogAuthor) BloggerSummary {
	return BloggerSummary{
		ID:       a.ID,
		Username: a.String(),
		Bio:      a.Bio,
		URL:      a.AbsoluteURL(),
	}
}

func ToCommentResponse(c *BlogComment) CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		Title:       c.String(),
		Description: c.Description,
		PostDate:    c.PostDate.Format(DateLayout),
		Author: AuthorRef{
			ID:       c.AuthorID,
			Username: c.AuthorUsername,
		},
		BlogID:   c.BlogID,
		BlogName: c.BlogName,
	}
}

func ToBlogDetail(b *Blog, comments []BlogComment) *BlogDetail {
	detail := &BlogDetail{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		PostDate:    b.PostDate.Format(DateLayout),
		Author: AuthorRef{
			ID:       b.AuthorID,
			Username: b.AuthorUsername,
			URL:      BloggerURL(b.AuthorID),
		},
		URL:      b.AbsoluteURL(),
		Comments: make([]CommentResponse, len(comments)),
	}
	for i := range comments {
		detail.Comments[i] = ToCommentResponse(&comments[i])
	}
	return detail
}

// NewCommentForm mô tả field description của form comment
func NewCommentForm(b *Blog) *CommentForm {
	return &CommentForm{
		Blog: ToBlogSummary(b),
		Fields: map[string]FormField{
			"description": {Required: true, MaxLength: MaxCommentLength, HelpText: HelpCommentDescription},
		},
	}
}

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateCommentRequest là payload của form comment
type CreateCommentRequest struct {
	Description string `json:"description" form:"description"`
}

// Normalize bỏ khoảng trắng đầu/cuối, chỉ có whitespace coi như rỗng
func (r *CreateCommentRequest) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Description,
			validation.Required.Error("this field is required"),
			validation.RuneLength(1, MaxCommentLength),
		),
	)
}

// BlogInput dùng cho admin create/update blog
type BlogInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PostDate    string `json:"post_date"` // YYYY-MM-DD, rỗng = hôm nay
	AuthorID    int64  `json:"author_id"`
}

func (r *BlogInput) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.PostDate = strings.TrimSpace(r.PostDate)
}

func (r BlogInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, MaxBlogNameLength)),
		validation.Field(&r.Description, validation.Required, validation.RuneLength(1, MaxBlogDescriptionLength)),
		validation.Field(&r.PostDate, validation.Date(DateLayout)),
		validation.Field(&r.AuthorID, validation.Required, validation.Min(int64(1))),
	)
}

// AuthorInput dùng cho admin create author
type AuthorInput struct {
	UserID int64  `json:"user_id"`
	Bio    string `json:"bio"`
}

func (r *AuthorInput) Normalize() {
	r.Bio = strings.TrimSpace(r.Bio)
}

func (r AuthorInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Bio, validation.Required, validation.RuneLength(1, MaxBioLength)),
	)
}

// AuthorBioInput dùng cho admin update bio
type AuthorBioInput struct {
	Bio string `json:"bio"`
}

func (r *AuthorBioInput) Normalize() {
	r.Bio = strings.TrimSpace(r.Bio)
}

func (r AuthorBioInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Bio, validation.Required, validation.RuneLength(1, MaxBioLength)),
	)
}

// CommentInput dùng cho admin update comment
type CommentInput struct {
	Description string `json:"description"`
	PostDate    string `json:"post_date"`
}

func (r *CommentInput) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
	r.PostDate = strings.TrimSpace(r.PostDate)
}

func (r CommentInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Description, validation.Required, validation.RuneLength(1, MaxCommentLength)),
		validation.Field(&r.PostDate, validation.Date(DateLayout)),
	)
}

// ListFilter là bộ lọc của admin lists (author, post_date)
type ListFilter struct {
	AuthorID *int64
	PostDate *time.Time
}

// ParseDate đọc YYYY-MM-DD, rỗng trả về fallback
func ParseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return time.Parse(DateLayout, s)
}

// AsValidationError chuyển lỗi của ozzo-validation thành BlogError.
// validation.Errors -> VALIDATION_ERROR với details theo field, lỗi khác giữ nguyên.
func AsValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return NewValidationError(verrs)
	}
	return err
}
