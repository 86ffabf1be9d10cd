package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// StatsRepository answers aggregate sales questions over completed orders.
type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// Earnings sums the totals of completed orders created within [start, end].
func (r *StatsRepository) Earnings(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM orders
		WHERE status = 'complete'
			AND created_at >= $1
			AND created_at <= $2
	`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("query earnings: %w", err)
	}
	return total, nil
}

// SaleCount counts completed orders created within [start, end].
func (r *StatsRepository) SaleCount(ctx context.Context, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE status = 'complete'
			AND created_at >= $1
			AND created_at <= $2
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("query sale count: %w", err)
	}
	return count, nil
}
