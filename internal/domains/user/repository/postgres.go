package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/user"
	pkgdb "blog-backend/pkg/database"
)

const pgUniqueViolation = "23505"

// postgresRepository là implementation của user.Repository trên pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

// selectUser lấy user kèm author_id (nếu có author profile)
const selectUser = `
	SELECT u.id, u.username, u.password_hash, u.is_staff, u.created_at, a.id
	FROM users u
	LEFT JOIN blog_authors a ON a.user_id = u.id
`

// ========================================
// CREATE
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	return insertUser(ctx, r.pool, u)
}

// CreateWithAuthor - user + blog_authors trong một transaction
// Lỗi ở bước 2 rollback cả user vừa insert
func (r *postgresRepository) CreateWithAuthor(ctx context.Context, u *user.User, bio string) error {
	return pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Step 1: Insert user
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}

		// Step 2: Insert author profile
		var authorID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO blog_authors (user_id, bio) VALUES ($1, $2) RETURNING id`,
			u.ID, bio,
		).Scan(&authorID)
		if err != nil {
			if isUniqueViolation(err) {
				return user.ErrAlreadyAuthor
			}
			return fmt.Errorf("failed to create author profile: %w", err)
		}

		u.AuthorID = &authorID
		return nil
	})
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertUser(ctx context.Context, q queryRower, u *user.User) error {
	query := `
		INSERT INTO users (username, password_hash, is_staff)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, u.Username, u.PasswordHash, u.IsStaff).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ========================================
// QUERIES
// ========================================

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.id = $1`, id)
}

func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.username = $1`, username)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.IsStaff, &u.CreatedAt, &u.AuthorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// ========================================
// UPDATE
// ========================================

func (r *postgresRepository) SetStaff(ctx context.Context, username string, isStaff bool) (*user.User, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET is_staff = $2 WHERE username = $1`, username, isStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, user.ErrUserNotFound
	}
	return r.FindByUsername(ctx, username)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
