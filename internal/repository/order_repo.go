package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/storefront-email-reports/internal/model"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// OrdersInWindow returns completed orders created within [start, end] with
// their line items, oldest order first.
func (r *OrderRepository) OrdersInWindow(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	query := `
		SELECT o.id, o.status, o.total, o.created_at,
			i.product_id, i.product_name, i.unit_price, i.quantity, i.in_bundle
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.status = 'complete'
			AND o.created_at >= $1
			AND o.created_at <= $2
		ORDER BY o.created_at ASC, o.id, i.id
	`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query orders in window: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	index := make(map[string]int)
	for rows.Next() {
		var (
			o    model.Order
			item model.OrderItem
		)
		err := rows.Scan(
			&o.ID, &o.Status, &o.Total, &o.CreatedAt,
			&item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.InBundle,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		idx, seen := index[o.ID]
		if !seen {
			idx = len(orders)
			index[o.ID] = idx
			orders = append(orders, o)
		}
		item.OrderID = o.ID
		orders[idx].Items = append(orders[idx].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

// LastSaleTimes maps each product that has ever sold to the creation time
// of its most recent completed order.
func (r *OrderRepository) LastSaleTimes(ctx context.Context) (map[string]time.Time, error) {
	query := `
		SELECT i.product_id, MAX(o.created_at)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.status = 'complete'
		GROUP BY i.product_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query last sale times: %w", err)
	}
	defer rows.Close()

	lastSales := make(map[string]time.Time)
	for rows.Next() {
		var (
			productID string
			at        time.Time
		)
		if err := rows.Scan(&productID, &at); err != nil {
			return nil, fmt.Errorf("scan last sale row: %w", err)
		}
		lastSales[productID] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate last sale rows: %w", err)
	}
	return lastSales, nil
}
