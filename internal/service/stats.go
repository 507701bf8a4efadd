package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esp-dakar/espeat-api/internal/cache"
	"github.com/esp-dakar/espeat-api/internal/domain"
)

var ErrInvalidStatsPeriod = errors.New("invalid statistics period")

const topDishesLimit = 5

type StatsRepository interface {
	Aggregate(ctx context.Context, from, until time.Time) (domain.Statistics, error)
	MonthlySales(ctx context.Context, since time.Time) ([]domain.MonthlySales, error)
	TopDishes(ctx context.Context, from, until time.Time, limit int) ([]domain.DishCount, error)
}

type StatsService struct {
	repo     StatsRepository
	cache    *cache.TTLCache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewStatsService(repo StatsRepository, cacheTTL time.Duration) *StatsService {
	return &StatsService{
		repo:     repo,
		cache:    cache.NewTTLCache(),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Close releases the cache's background cleanup goroutine.
func (s *StatsService) Close() {
	s.cache.Stop()
}

// Compute aggregates the period's numbers from recorded purchases and scans.
// Results are cached briefly since the dashboard polls them.
func (s *StatsService) Compute(ctx context.Context, period string) (domain.Statistics, error) {
	from, until, err := s.window(period)
	if err != nil {
		return domain.Statistics{}, err
	}

	key := "stats:" + period
	if cached, ok := s.cache.Get(key); ok {
		return cached.(domain.Statistics), nil
	}

	stats, err := s.repo.Aggregate(ctx, from, until)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("s.repo.Aggregate -> %w", err)
	}
	stats.Period = period

	s.cache.Set(key, stats, s.cacheTTL)

	return stats, nil
}

func (s *StatsService) MonthlySales(ctx context.Context) ([]domain.MonthlySales, error) {
	key := "stats:monthly"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]domain.MonthlySales), nil
	}

	since := s.now().UTC().AddDate(-1, 0, 0)
	sales, err := s.repo.MonthlySales(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("s.repo.MonthlySales -> %w", err)
	}

	s.cache.Set(key, sales, s.cacheTTL)

	return sales, nil
}

// Export builds the downloadable snapshot of the statistics view, always
// from fresh aggregates.
func (s *StatsService) Export(ctx context.Context, period string) (domain.StatisticsExport, error) {
	from, until, err := s.window(period)
	if err != nil {
		return domain.StatisticsExport{}, err
	}

	stats, err := s.repo.Aggregate(ctx, from, until)
	if err != nil {
		return domain.StatisticsExport{}, fmt.Errorf("s.repo.Aggregate -> %w", err)
	}
	stats.Period = period

	since := s.now().UTC().AddDate(-1, 0, 0)
	sales, err := s.repo.MonthlySales(ctx, since)
	if err != nil {
		return domain.StatisticsExport{}, fmt.Errorf("s.repo.MonthlySales -> %w", err)
	}

	dishes, err := s.repo.TopDishes(ctx, from, until, topDishesLimit)
	if err != nil {
		return domain.StatisticsExport{}, fmt.Errorf("s.repo.TopDishes -> %w", err)
	}

	return domain.StatisticsExport{
		Period:       period,
		GeneratedAt:  s.now().UTC(),
		Statistics:   stats,
		MonthlySales: sales,
		TopDishes:    dishes,
	}, nil
}

func (s *StatsService) window(period string) (time.Time, time.Time, error) {
	now := s.now().UTC()
	until := now

	var from time.Time
	switch period {
	case domain.StatsPeriodDay:
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case domain.StatsPeriodMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case domain.StatsPeriodYear:
		from = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, time.Time{}, ErrInvalidStatsPeriod
	}

	return from, until, nil
}
