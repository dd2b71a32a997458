package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/shared/utils"
)

// =====================================================
// POSTGRES BLOG REPOSITORY
// =====================================================

type postgresBlogRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &postgresBlogRepository{pool: pool}
}

const blogColumns = `
	b.id, b.name, b.description, b.post_date, b.author_id, u.username
`

const blogFrom = `
	FROM blogs b
	JOIN blog_authors a ON a.id = b.author_id
	JOIN users u ON u.id = a.user_id
`

func scanBlogs(rows pgx.Rows) ([]model.Blog, error) {
	defer rows.Close()

	blogs := make([]model.Blog, 0)
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.PostDate, &b.AuthorID, &b.AuthorUsername); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// =====================================================
// LIST
// =====================================================

func (r *postgresBlogRepository) List(ctx context.Context, offset, limit int) ([]model.Blog, int64, error) {
	return r.AdminList(ctx, model.ListFilter{}, offset, limit)
}

func (r *postgresBlogRepository) ListByAuthor(ctx context.Context, authorID int64, offset, limit int) ([]model.Blog, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs WHERE author_id = $1`, authorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs by author: %w", err)
	}

	query := `SELECT ` + blogColumns + blogFrom + `
		WHERE b.author_id = $1
		ORDER BY b.id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs by author: %w", err)
	}
	blogs, err := scanBlogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *postgresBlogRepository) AdminList(ctx context.Context, filter model.ListFilter, offset, limit int) ([]model.Blog, int64, error) {
	var where utils.WhereBuilder
	if filter.AuthorID != nil {
		where.Add("b.author_id = ?", *filter.AuthorID)
	}
	if filter.PostDate != nil {
		where.Add("b.post_date = ?", *filter.PostDate)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM blogs b` + where.SQL()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	query := `SELECT ` + blogColumns + blogFrom + where.SQL() +
		` ORDER BY b.post_date DESC, b.id DESC LIMIT ` + where.NextArg(limit) + ` OFFSET ` + where.NextArg(offset)

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	blogs, err := scanBlogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresBlogRepository) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	query := `SELECT ` + blogColumns + blogFrom + ` WHERE b.id = $1`

	var b model.Blog
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Description, &b.PostDate, &b.AuthorID, &b.AuthorUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return &b, nil
}

// =====================================================
// CREATE / UPDATE / DELETE
// =====================================================

func (r *postgresBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	query := `
		INSERT INTO blogs (name, description, post_date, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, blog.Name, blog.Description, blog.PostDate, blog.AuthorID).Scan(&blog.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

func (r *postgresBlogRepository) Update(ctx context.Context, blog *model.Blog) error {
	query := `
		UPDATE blogs
		SET name = $2, description = $3, post_date = $4, author_id = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, blog.ID, blog.Name, blog.Description, blog.PostDate, blog.AuthorID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to update blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *postgresBlogRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}
