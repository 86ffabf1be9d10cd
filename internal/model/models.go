package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProductStatusPublished = "published"
	ProductStatusDraft     = "draft"

	OrderStatusComplete = "complete"
	OrderStatusPending  = "pending"
	OrderStatusRefunded = "refunded"
)

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []OrderItem     `json:"items"`
}

// OrderItem is one purchased line. InBundle marks lines that were sold as
// part of a bundle; those must not count against the individual product.
type OrderItem struct {
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	InBundle    bool            `json:"in_bundle"`
}
