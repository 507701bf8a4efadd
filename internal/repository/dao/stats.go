package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// StatsDAO runs the aggregation queries behind the statistics views. All
// figures are computed from recorded purchases and scans, never from
// precomputed counters.
type StatsDAO struct {
	db *gorm.DB
}

func NewStatsDAO(db *gorm.DB) *StatsDAO {
	return &StatsDAO{
		db: db,
	}
}

type salesRow struct {
	Revenue int
	Ndekki  int
	Repas   int
}

// SumSales returns revenue and per-type tickets sold between from
// (inclusive) and until (exclusive).
func (d *StatsDAO) SumSales(ctx context.Context, from, until time.Time) (revenue, ndekki, repas int, err error) {
	var row salesRow

	err = d.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(amount), 0)       AS revenue,
		            COALESCE(SUM(ndekki_count), 0) AS ndekki,
		            COALESCE(SUM(repas_count), 0)  AS repas
		     FROM ticket_purchases
		     WHERE created_at >= ? AND created_at < ?`, from, until).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}

	return row.Revenue, row.Ndekki, row.Repas, nil
}

type usageRow struct {
	Ndekki int
	Repas  int
}

// SumUsage returns per-type tickets consumed by valid scans in the window.
func (d *StatsDAO) SumUsage(ctx context.Context, from, until time.Time) (ndekki, repas int, err error) {
	var row usageRow

	err = d.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(CASE WHEN ticket_type = 'ndekki' THEN count ELSE 0 END), 0) AS ndekki,
		            COALESCE(SUM(CASE WHEN ticket_type = 'repas'  THEN count ELSE 0 END), 0) AS repas
		     FROM ticket_scans
		     WHERE status = 'valid' AND created_at >= ? AND created_at < ?`, from, until).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}

	return row.Ndekki, row.Repas, nil
}

type MonthlySalesRow struct {
	Month   string
	Revenue int
}

// MonthlySales buckets purchase revenue by calendar month over the last
// twelve months.
func (d *StatsDAO) MonthlySales(ctx context.Context, since time.Time) ([]MonthlySalesRow, error) {
	var rows []MonthlySalesRow

	err := d.db.WithContext(ctx).
		Raw(`SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		            COALESCE(SUM(amount), 0)                            AS revenue
		     FROM ticket_purchases
		     WHERE created_at >= ?
		     GROUP BY 1
		     ORDER BY 1`, since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// MenusOnScanDays returns the menus dated on days that saw at least one
// valid scan in the window. The service derives the top-dishes ranking from
// their dish lists.
func (d *StatsDAO) MenusOnScanDays(ctx context.Context, from, until time.Time) ([]Menu, error) {
	var menus []Menu

	err := d.db.WithContext(ctx).
		Raw(`SELECT m.* FROM menus m
		     WHERE m.date IN (
		         SELECT DISTINCT date_trunc('day', s.created_at)
		         FROM ticket_scans s
		         WHERE s.status = 'valid' AND s.created_at >= ? AND s.created_at < ?
		     )`, from, until).
		Scan(&menus).Error
	if err != nil {
		return nil, err
	}

	return menus, nil
}
