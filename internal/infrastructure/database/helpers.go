package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// Ping kiểm tra database connection có còn sống không
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close đóng tất cả connections trong pool. Gọi nhiều lần là no-op.
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}
	log.Info().Msg("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
}

// Begin thỏa mãn pkg/database.TxBeginner
func (db *PostgresDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	return db.Pool.Begin(ctx)
}

// PoolStats là snapshot thống kê connection pool, trả về trong /health
type PoolStats struct {
	TotalConns         int32  `json:"total_conns"`
	AcquiredConns      int32  `json:"acquired_conns"`
	IdleConns          int32  `json:"idle_conns"`
	MaxConns           int32  `json:"max_conns"`
	AcquireCount       int64  `json:"acquire_count"`
	EmptyAcquireCount  int64  `json:"empty_acquire_count"`
	AvgAcquireDuration string `json:"avg_acquire_duration"`
}

// Stats trả về snapshot của connection pool statistics
func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		TotalConns:         raw.TotalConns(),
		AcquiredConns:      raw.AcquiredConns(),
		IdleConns:          raw.IdleConns(),
		MaxConns:           raw.MaxConns(),
		AcquireCount:       raw.AcquireCount(),
		EmptyAcquireCount:  raw.EmptyAcquireCount(),
		AvgAcquireDuration: calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()).String(),
	}, nil
}

// calculateAvgDuration là helper để tính average acquire duration
func calculateAvgDuration(totalDuration time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return totalDuration / time.Duration(count)
}
