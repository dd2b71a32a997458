package repository

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "blog_authors_user_id_key"}
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "blog_comments_blog_id_fkey"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))

	code, constraint := pgErrorCode(fk)
	assert.Equal(t, pgForeignKeyViolation, code)
	assert.Equal(t, "blog_comments_blog_id_fkey", constraint)

	code, _ = pgErrorCode(fmt.Errorf("plain"))
	assert.Empty(t, code)
}
