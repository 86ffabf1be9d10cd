package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type productProfile struct {
	Name      string
	Status    string
	Price     float64
	Weight    int  // relative chance of appearing in an order; 0 = never sells
	StaleDays int  // if > 0, the product's only sales happened this long ago
	Bundle    bool // purchasing this also ships a component flagged in_bundle
}

var products = []productProfile{
	// Steady sellers
	{Name: "Field Notes eBook", Status: "published", Price: 12.00, Weight: 8},
	{Name: "Gradient Icon Pack", Status: "published", Price: 6.50, Weight: 10},
	{Name: "Podcast Starter Kit", Status: "published", Price: 29.00, Weight: 6},
	{Name: "Lightroom Preset Bundle", Status: "published", Price: 19.00, Weight: 7, Bundle: true},
	{Name: "Budget Spreadsheet Pro", Status: "published", Price: 9.00, Weight: 9},
	{Name: "Wireframe UI Kit", Status: "published", Price: 24.00, Weight: 5},

	// Cold sellers: last sale well in the past
	{Name: "Holiday Banner Pack", Status: "published", Price: 4.00, Weight: 2, StaleDays: 120},
	{Name: "Retro Font Collection", Status: "published", Price: 14.00, Weight: 2, StaleDays: 75},
	{Name: "Conference Slide Deck", Status: "published", Price: 17.00, Weight: 1, StaleDays: 45},

	// Never sold
	{Name: "Unreleased Sound Pack", Status: "published", Price: 11.00, Weight: 0},
	{Name: "Draft Style Guide", Status: "draft", Price: 8.00, Weight: 0},
}

// bundleComponent is the catalog index shipped alongside the preset
// bundle, flagged in_bundle so rankings don't double-count it.
const bundleComponent = 1

// SeedData loads a deterministic demo catalog with roughly two months of
// order history, weighted toward recent days so today's report has
// something to say. Idempotent: a non-empty catalog short-circuits.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = uuid.NewString()
		_, err := tx.Exec(ctx,
			"INSERT INTO products (id, name, status) VALUES ($1, $2, $3)",
			ids[i], p.Name, p.Status)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.Name, err)
		}
	}
	log.Info().Int("count", len(products)).Msg("inserted products")

	now := time.Now()
	totalOrders := 0

	// Historical sales for the cold sellers, a small batch each around
	// their staleness anchor.
	for i, p := range products {
		if p.StaleDays == 0 || p.Weight == 0 {
			continue
		}
		for n := 0; n < 2+rng.Intn(3); n++ {
			at := now.AddDate(0, 0, -p.StaleDays-rng.Intn(10))
			if err := insertOrder(ctx, tx, rng, at, []int{i}, ids); err != nil {
				return err
			}
			totalOrders++
		}
	}

	// Recent history: 60 days of orders, denser toward today.
	for day := 60; day >= 0; day-- {
		ordersToday := rng.Intn(3)
		if day <= 14 {
			ordersToday = 1 + rng.Intn(4)
		}
		for n := 0; n < ordersToday; n++ {
			at := now.AddDate(0, 0, -day).
				Add(-time.Duration(rng.Intn(12)) * time.Hour).
				Add(-time.Duration(rng.Intn(60)) * time.Minute)

			var picks []int
			for i, p := range products {
				if p.StaleDays > 0 || p.Weight == 0 {
					continue
				}
				if rng.Intn(10) < p.Weight {
					picks = append(picks, i)
				}
			}
			if len(picks) == 0 {
				continue
			}
			if len(picks) > 3 {
				picks = picks[:3]
			}
			if err := insertOrder(ctx, tx, rng, at, picks, ids); err != nil {
				return err
			}
			totalOrders++
		}
	}
	log.Info().Int("count", totalOrders).Msg("inserted orders")

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().Msg("seed data generation complete")
	return nil
}

func insertOrder(ctx context.Context, tx pgx.Tx, rng *rand.Rand, at time.Time, picks []int, ids []string) error {
	status := "complete"
	if roll := rng.Float64(); roll > 0.92 {
		if rng.Float64() < 0.5 {
			status = "pending"
		} else {
			status = "refunded"
		}
	}

	type line struct {
		productIdx int
		qty        int
		inBundle   bool
	}

	var lines []line
	for _, idx := range picks {
		qty := 1
		if rng.Float64() < 0.2 {
			qty = 2
		}
		lines = append(lines, line{productIdx: idx, qty: qty})
		if products[idx].Bundle {
			lines = append(lines, line{productIdx: bundleComponent, qty: 1, inBundle: true})
		}
	}

	total := decimal.Zero
	for _, l := range lines {
		if l.inBundle {
			continue
		}
		price := decimal.NewFromFloat(products[l.productIdx].Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.qty))))
	}

	orderID := uuid.NewString()
	_, err := tx.Exec(ctx,
		"INSERT INTO orders (id, status, total, created_at) VALUES ($1, $2, $3, $4)",
		orderID, status, total, at)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, l := range lines {
		p := products[l.productIdx]
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, in_bundle)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			orderID, ids[l.productIdx], p.Name, decimal.NewFromFloat(p.Price), l.qty, l.inBundle)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}
