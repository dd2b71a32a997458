package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/blog/model"
	"blog-backend/internal/shared/utils"
)

// =====================================================
// POSTGRES COMMENT REPOSITORY
// =====================================================

type postgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &postgresCommentRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.description, c.post_date, c.author_id, c.blog_id, u.username, b.name
	FROM blog_comments c
	JOIN users u ON u.id = c.author_id
	JOIN blogs b ON b.id = c.blog_id
`

func scanComments(rows pgx.Rows) ([]model.BlogComment, error) {
	defer rows.Close()

	comments := make([]model.BlogComment, 0)
	for rows.Next() {
		var c model.BlogComment
		if err := rows.Scan(&c.ID, &c.Description, &c.PostDate, &c.AuthorID, &c.BlogID, &c.AuthorUsername, &c.BlogName); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *postgresCommentRepository) ListByBlog(ctx context.Context, blogID int64) ([]model.BlogComment, error) {
	rows, err := r.pool.Query(ctx, commentSelect+` WHERE c.blog_id = $1 ORDER BY c.post_date ASC, c.id ASC`, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return scanComments(rows)
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *model.BlogComment) error {
	query := `
		WITH inserted AS (
			INSERT INTO blog_comments (description, post_date, author_id, blog_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, author_id
		)
		SELECT i.id, u.username
		FROM inserted i
		JOIN users u ON u.id = i.author_id
	`

	err := r.pool.QueryRow(ctx, query, comment.Description, comment.PostDate, comment.AuthorID, comment.BlogID).
		Scan(&comment.ID, &comment.AuthorUsername)
	if err != nil {
		if isForeignKeyViolation(err) {
			if _, constraint := pgErrorCode(err); constraint == "blog_comments_author_id_fkey" {
				return model.ErrUserNotFound
			}
			return model.ErrBlogNotFound
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepository) GetByID(ctx context.Context, id int64) (*model.BlogComment, error) {
	rows, err := r.pool.Query(ctx, commentSelect+` WHERE c.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	comments, err := scanComments(rows)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, model.ErrCommentNotFound
	}
	return &comments[0], nil
}

func (r *postgresCommentRepository) Update(ctx context.Context, comment *model.BlogComment) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE blog_comments SET description = $2, post_date = $3 WHERE id = $1`,
		comment.ID, comment.Description, comment.PostDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *postgresCommentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *postgresCommentRepository) AdminList(ctx context.Context, filter model.ListFilter, offset, limit int) ([]model.BlogComment, int64, error) {
	var where utils.WhereBuilder
	if filter.AuthorID != nil {
		where.Add("c.author_id = ?", *filter.AuthorID)
	}
	if filter.PostDate != nil {
		where.Add("c.post_date = ?", *filter.PostDate)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blog_comments c`+where.SQL(), where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := commentSelect + where.SQL() +
		` ORDER BY c.post_date DESC, c.id DESC LIMIT ` + where.NextArg(limit) + ` OFFSET ` + where.NextArg(offset)

	rows, err := r.pool.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	comments, err := scanComments(rows)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
