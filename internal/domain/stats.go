package domain

import "time"

const (
	StatsPeriodDay   = "day"
	StatsPeriodMonth = "month"
	StatsPeriodYear  = "year"
)

// TicketCounts is a per-type tally.
type TicketCounts struct {
	Ndekki int `json:"ndekki"`
	Repas  int `json:"repas"`
}

// Statistics are aggregates computed over recorded purchases and scans,
// never precomputed snapshots.
type Statistics struct {
	Period      string       `json:"period"`
	Revenue     int          `json:"revenue"`
	TicketsSold TicketCounts `json:"tickets_sold"`
	TicketsUsed TicketCounts `json:"tickets_used"`
}

type MonthlySales struct {
	Month   string `json:"month"` // "2025-01"
	Revenue int    `json:"revenue"`
}

type DishCount struct {
	Dish  string `json:"dish"`
	Count int    `json:"count"`
}

// StatisticsExport is the downloadable JSON artifact of the statistics view.
type StatisticsExport struct {
	Period       string         `json:"period"`
	GeneratedAt  time.Time      `json:"generated_at"`
	Statistics   Statistics     `json:"statistics"`
	MonthlySales []MonthlySales `json:"monthly_sales"`
	TopDishes    []DishCount    `json:"top_dishes"`
}
