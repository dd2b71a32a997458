package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx chỉ override Commit/Rollback, các method khác của pgx.Tx không được gọi
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTransaction_Commits(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return nil })

	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, b.tx.committed)
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_RollsBackOnPanic(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), b, func(pgx.Tx) error { panic("kaboom") })
	})
	assert.True(t, b.tx.rolledBack)
}

func TestWithTransaction_BeginError(t *testing.T) {
	b := &fakeBeginner{beginErr: errors.New("no conn")}

	err := WithTransaction(context.Background(), b, func(pgx.Tx) error { return nil })

	assert.ErrorContains(t, err, "failed to begin transaction")
}

func TestWithTransactionResult(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}

	got, err := WithTransactionResult(context.Background(), b, func(pgx.Tx) (int64, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)

	b = &fakeBeginner{tx: &fakeTx{commitErr: errors.New("commit failed")}}
	got, err = WithTransactionResult(context.Background(), b, func(pgx.Tx) (int64, error) { return 7, nil })
	assert.Error(t, err)
	assert.Zero(t, got)
}
