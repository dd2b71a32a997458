package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/blog/model"
)

// =====================================================
// POSTGRES AUTHOR REPOSITORY
// =====================================================

type postgresAuthorRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAuthorRepository(pool *pgxpool.Pool) AuthorRepository {
	return &postgresAuthorRepository{pool: pool}
}

func (r *postgresAuthorRepository) List(ctx context.Context, offset, limit int) ([]model.BlogAuthor, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blog_authors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	// COLLATE "C": so sánh theo byte, chữ hoa đứng trước chữ thường
	query := `
		SELECT a.id, a.user_id, a.bio, u.username
		FROM blog_authors a
		JOIN users u ON u.id = a.user_id
		ORDER BY u.username COLLATE "C" ASC, a.id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.BlogAuthor, 0, limit)
	for rows.Next() {
		var a model.BlogAuthor
		if err := rows.Scan(&a.ID, &a.UserID, &a.Bio, &a.Username); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

func (r *postgresAuthorRepository) GetByID(ctx context.Context, id int64) (*model.BlogAuthor, error) {
	query := `
		SELECT a.id, a.user_id, a.bio, u.username
		FROM blog_authors a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	var a model.BlogAuthor
	if err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.UserID, &a.Bio, &a.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return &a, nil
}

func (r *postgresAuthorRepository) Create(ctx context.Context, author *model.BlogAuthor) error {
	query := `
		WITH inserted AS (
			INSERT INTO blog_authors (user_id, bio)
			VALUES ($1, $2)
			RETURNING id, user_id
		)
		SELECT i.id, u.username
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`

	err := r.pool.QueryRow(ctx, query, author.UserID, author.Bio).Scan(&author.ID, &author.Username)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return model.ErrAlreadyAuthor
		case isForeignKeyViolation(err):
			return model.ErrUserNotFound
		}
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

func (r *postgresAuthorRepository) UpdateBio(ctx context.Context, id int64, bio string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE blog_authors SET bio = $2 WHERE id = $1`, id, bio)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresAuthorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blog_authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}
