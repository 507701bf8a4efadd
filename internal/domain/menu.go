package domain

import "time"

const (
	MenuPeriodToday    = "today"
	MenuPeriodUpcoming = "upcoming"
	MenuPeriodPast     = "past"
)

type Menu struct {
	ID           uint      `json:"id"`
	RestaurantID uint      `json:"restaurant_id"`
	Date         time.Time `json:"date"`
	NdekkiDishes []string  `json:"ndekki_dishes"`
	RepasDishes  []string  `json:"repas_dishes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
