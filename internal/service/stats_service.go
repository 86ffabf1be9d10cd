package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/storefront-email-reports/internal/report"
)

// StatsStore is the aggregate surface of repository.StatsRepository.
type StatsStore interface {
	Earnings(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	SaleCount(ctx context.Context, start, end time.Time) (int, error)
}

// StatsService owns the report's time windows and delegates the actual
// aggregation to the stats repository. All boundaries are midnight in the
// location of the supplied "now", since the delivery hour is local
// wall-clock time.
type StatsService struct {
	repo StatsStore
}

func NewStatsService(repo StatsStore) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) DailyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error) {
	return s.repo.Earnings(ctx, report.Midnight(now), now)
}

func (s *StatsService) DailySaleCount(ctx context.Context, now time.Time) (int, error) {
	return s.repo.SaleCount(ctx, report.Midnight(now), now)
}

// WeeklyEarnings covers the current calendar week, starting Sunday.
func (s *StatsService) WeeklyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error) {
	start := report.Midnight(now.AddDate(0, 0, -int(now.Weekday())))
	return s.repo.Earnings(ctx, start, now)
}

// MonthlyEarnings covers the current calendar month.
func (s *StatsService) MonthlyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.repo.Earnings(ctx, start, now)
}

// RollingWeeklyEarnings covers the trailing seven days including today.
func (s *StatsService) RollingWeeklyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error) {
	return s.repo.Earnings(ctx, report.RollingWeekStart(now), now)
}

// RollingMonthlyEarnings covers the trailing thirty days.
func (s *StatsService) RollingMonthlyEarnings(ctx context.Context, now time.Time) (decimal.Decimal, error) {
	start := report.Midnight(now.AddDate(0, 0, -30))
	return s.repo.Earnings(ctx, start, now)
}
