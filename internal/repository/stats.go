package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository/dao"
)

type StatsDAO interface {
	SumSales(ctx context.Context, from, until time.Time) (revenue, ndekki, repas int, err error)
	SumUsage(ctx context.Context, from, until time.Time) (ndekki, repas int, err error)
	MonthlySales(ctx context.Context, since time.Time) ([]dao.MonthlySalesRow, error)
	MenusOnScanDays(ctx context.Context, from, until time.Time) ([]dao.Menu, error)
}

type StatsRepository struct {
	dao StatsDAO
}

func NewStatsRepository(dao StatsDAO) *StatsRepository {
	return &StatsRepository{
		dao: dao,
	}
}

// Aggregate computes revenue, tickets sold and tickets used over the window.
func (r *StatsRepository) Aggregate(ctx context.Context, from, until time.Time) (domain.Statistics, error) {
	revenue, soldNdekki, soldRepas, err := r.dao.SumSales(ctx, from, until)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("r.dao.SumSales -> %w", err)
	}

	usedNdekki, usedRepas, err := r.dao.SumUsage(ctx, from, until)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("r.dao.SumUsage -> %w", err)
	}

	return domain.Statistics{
		Revenue:     revenue,
		TicketsSold: domain.TicketCounts{Ndekki: soldNdekki, Repas: soldRepas},
		TicketsUsed: domain.TicketCounts{Ndekki: usedNdekki, Repas: usedRepas},
	}, nil
}

func (r *StatsRepository) MonthlySales(ctx context.Context, since time.Time) ([]domain.MonthlySales, error) {
	rows, err := r.dao.MonthlySales(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("r.dao.MonthlySales -> %w", err)
	}

	sales := make([]domain.MonthlySales, len(rows))
	for i, row := range rows {
		sales[i] = domain.MonthlySales{Month: row.Month, Revenue: row.Revenue}
	}

	return sales, nil
}

// TopDishes ranks the dishes of menus served on scan days in the window.
func (r *StatsRepository) TopDishes(ctx context.Context, from, until time.Time, limit int) ([]domain.DishCount, error) {
	menus, err := r.dao.MenusOnScanDays(ctx, from, until)
	if err != nil {
		return nil, fmt.Errorf("r.dao.MenusOnScanDays -> %w", err)
	}

	counts := make(map[string]int)
	for _, menu := range menus {
		for _, dish := range menu.NdekkiDishes {
			counts[dish]++
		}
		for _, dish := range menu.RepasDishes {
			counts[dish]++
		}
	}

	dishes := make([]domain.DishCount, 0, len(counts))
	for dish, count := range counts {
		dishes = append(dishes, domain.DishCount{Dish: dish, Count: count})
	}

	// Highest count first, name as tie-breaker to keep the order stable.
	sort.Slice(dishes, func(i, j int) bool {
		if dishes[i].Count != dishes[j].Count {
			return dishes[i].Count > dishes[j].Count
		}
		return dishes[i].Dish < dishes[j].Dish
	})

	if limit > 0 && len(dishes) > limit {
		dishes = dishes[:limit]
	}

	return dishes, nil
}
