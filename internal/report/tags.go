package report

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/storefront-email-reports/internal/currency"
	"github.com/anyulbade/storefront-email-reports/internal/model"
)

// StatsProvider answers the earnings and order-count questions the report
// tags ask. All windows are anchored on the render's "now".
type StatsProvider interface {
	DailyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error)
	DailySaleCount(ctx context.Context, now time.Time) (int, error)
	WeeklyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error)
	MonthlyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error)
	RollingWeeklyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error)
	RollingMonthlyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error)
}

// OrderProvider supplies completed orders with their line items, plus the
// most recent sale time per product.
type OrderProvider interface {
	OrdersInWindow(ctx context.Context, start, end time.Time) ([]model.Order, error)
	LastSaleTimes(ctx context.Context) (map[string]time.Time, error)
}

// ProductProvider supplies the published catalog.
type ProductProvider interface {
	PublishedProducts(ctx context.Context) ([]model.Product, error)
}

// RollingWeekStart returns midnight six days before now, in now's
// location. Together with now it forms the seven-day inclusive window the
// weekly best-seller ranking reports on.
func RollingWeekStart(now time.Time) time.Time {
	return Midnight(now.AddDate(0, 0, -6))
}

func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DefaultTags builds the fixed tag set the daily report uses. Register
// them all at startup; the set never changes afterwards.
func DefaultTags(stats StatsProvider, orders OrderProvider, products ProductProvider, fmtr currency.Formatter) []Tag {
	return []Tag{
		{
			Name:        "email_report_currency",
			Description: "The currency symbol configured for the store.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				return fmtr.Filter(""), nil
			},
		},
		{
			Name:        "email_report_letters_of_days_in_week",
			Description: "First letters of the past seven day names, today first.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				letters := make([]string, 0, 7)
				for i := 0; i < 7; i++ {
					letters = append(letters, now.AddDate(0, 0, -i).Weekday().String()[:1])
				}
				return strings.Join(letters, " "), nil
			},
		},
		{
			Name:        "email_report_daily_total",
			Description: "Total earnings for today, without the currency symbol.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				total, err := stats.DailyEarnings(ctx, now)
				if err != nil {
					return "", err
				}
				// The template places {email_report_currency} around this
				// value itself, so no symbol here.
				return fmtr.Amount(total), nil
			},
		},
		{
			Name:        "email_report_daily_transactions",
			Description: "Number of completed orders today.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				n, err := stats.DailySaleCount(ctx, now)
				if err != nil {
					return "", err
				}
				return strconv.Itoa(n), nil
			},
		},
		{
			Name:        "email_report_weekly_best_selling_downloads",
			Description: "Ranked list of products sold over the past seven days.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				window, err := orders.OrdersInWindow(ctx, RollingWeekStart(now), now)
				if err != nil {
					return "", err
				}
				return BestSellingList(window, fmtr.FilterAmount), nil
			},
		},
		{
			Name:        "email_report_weekly_total",
			Description: "Total earnings for the current calendar week.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				total, err := stats.WeeklyEarnings(ctx, now)
				if err != nil {
					return "", err
				}
				return fmtr.FilterAmount(total), nil
			},
		},
		{
			Name:        "email_report_monthly_total",
			Description: "Total earnings for the current calendar month.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				total, err := stats.MonthlyEarnings(ctx, now)
				if err != nil {
					return "", err
				}
				return fmtr.FilterAmount(total), nil
			},
		},
		{
			Name:        "email_report_rolling_weekly_total",
			Description: "Total earnings for the past seven days, including today.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				total, err := stats.RollingWeeklyEarnings(ctx, now)
				if err != nil {
					return "", err
				}
				return fmtr.FilterAmount(total), nil
			},
		},
		{
			Name:        "email_report_rolling_monthly_total",
			Description: "Total earnings for the past thirty days.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				total, err := stats.RollingMonthlyEarnings(ctx, now)
				if err != nil {
					return "", err
				}
				return fmtr.FilterAmount(total), nil
			},
		},
		{
			Name:        "email_report_cold_selling_downloads",
			Description: "Published products whose most recent sale is furthest in the past.",
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				catalog, err := products.PublishedProducts(ctx)
				if err != nil {
					return "", err
				}
				lastSales, err := orders.LastSaleTimes(ctx)
				if err != nil {
					return "", err
				}
				return ColdSellingList(catalog, lastSales, now), nil
			},
		},
	}
}
