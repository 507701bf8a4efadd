package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esp-dakar/espeat-api/internal/domain"
)

type fakeStatsRepo struct {
	aggregateCalls int
	revenue        int

	lastFrom  time.Time
	lastUntil time.Time
}

func (f *fakeStatsRepo) Aggregate(_ context.Context, from, until time.Time) (domain.Statistics, error) {
	f.aggregateCalls++
	f.lastFrom, f.lastUntil = from, until

	return domain.Statistics{
		Revenue:     f.revenue,
		TicketsSold: domain.TicketCounts{Ndekki: 10, Repas: 5},
		TicketsUsed: domain.TicketCounts{Ndekki: 8, Repas: 4},
	}, nil
}

func (f *fakeStatsRepo) MonthlySales(_ context.Context, _ time.Time) ([]domain.MonthlySales, error) {
	return []domain.MonthlySales{{Month: "2025-01", Revenue: 125000}}, nil
}

func (f *fakeStatsRepo) TopDishes(_ context.Context, _, _ time.Time, limit int) ([]domain.DishCount, error) {
	dishes := []domain.DishCount{
		{Dish: "Thiéboudienne", Count: 4},
		{Dish: "Yassa Poulet", Count: 2},
	}
	if limit > 0 && len(dishes) > limit {
		dishes = dishes[:limit]
	}

	return dishes, nil
}

func TestStatsService_Compute(t *testing.T) {
	now := time.Date(2025, 1, 15, 13, 30, 0, 0, time.UTC)

	t.Run("windows match the period", func(t *testing.T) {
		tests := []struct {
			period   string
			wantFrom time.Time
		}{
			{domain.StatsPeriodDay, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
			{domain.StatsPeriodMonth, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{domain.StatsPeriodYear, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		}

		for _, tt := range tests {
			t.Run(tt.period, func(t *testing.T) {
				repo := &fakeStatsRepo{revenue: 125000}
				svc := NewStatsService(repo, time.Minute)
				defer svc.Close()
				svc.now = func() time.Time { return now }

				stats, err := svc.Compute(context.Background(), tt.period)

				require.NoError(t, err)
				assert.Equal(t, tt.period, stats.Period)
				assert.Equal(t, 125000, stats.Revenue)
				assert.True(t, repo.lastFrom.Equal(tt.wantFrom))
				assert.True(t, repo.lastUntil.Equal(now))
			})
		}
	})

	t.Run("second call within the TTL hits the cache", func(t *testing.T) {
		repo := &fakeStatsRepo{revenue: 125000}
		svc := NewStatsService(repo, time.Minute)
		defer svc.Close()
		svc.now = func() time.Time { return now }

		_, err := svc.Compute(context.Background(), domain.StatsPeriodDay)
		require.NoError(t, err)
		_, err = svc.Compute(context.Background(), domain.StatsPeriodDay)
		require.NoError(t, err)

		assert.Equal(t, 1, repo.aggregateCalls)
	})

	t.Run("rejects an unknown period", func(t *testing.T) {
		svc := NewStatsService(&fakeStatsRepo{}, time.Minute)
		defer svc.Close()

		_, err := svc.Compute(context.Background(), "week")

		assert.ErrorIs(t, err, ErrInvalidStatsPeriod)
	})
}

func TestStatsService_Export(t *testing.T) {
	now := time.Date(2025, 1, 15, 13, 30, 0, 0, time.UTC)

	repo := &fakeStatsRepo{revenue: 125000}
	svc := NewStatsService(repo, time.Minute)
	defer svc.Close()
	svc.now = func() time.Time { return now }

	export, err := svc.Export(context.Background(), domain.StatsPeriodMonth)

	require.NoError(t, err)
	assert.Equal(t, domain.StatsPeriodMonth, export.Period)
	assert.True(t, export.GeneratedAt.Equal(now))
	assert.Equal(t, 125000, export.Statistics.Revenue)
	require.Len(t, export.MonthlySales, 1)
	assert.Equal(t, "2025-01", export.MonthlySales[0].Month)
	require.Len(t, export.TopDishes, 2)
	assert.Equal(t, "Thiéboudienne", export.TopDishes[0].Dish)
}
