package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

var (
	ErrRestaurantNotFound = repository.ErrRestaurantNotFound
	ErrMenuNotFound       = repository.ErrMenuNotFound
	ErrEmptyMenu          = errors.New("a menu needs a date and at least one dish of each type")
	ErrMenuNotOwned       = errors.New("menu belongs to another restaurant")
	ErrInvalidMenuPeriod  = errors.New("invalid menu period")
)

type RestaurantRepository interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	FindByID(ctx context.Context, id uint) (domain.Restaurant, error)
	CreateMenu(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	FindMenuByID(ctx context.Context, id uint) (domain.Menu, error)
	ListMenus(ctx context.Context, restaurantID uint, from, until time.Time) ([]domain.Menu, error)
	UpdateMenu(ctx context.Context, menu domain.Menu) (domain.Menu, error)
	DeleteMenu(ctx context.Context, id uint) error
}

type RestaurantService struct {
	repo RestaurantRepository
	now  func() time.Time
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *RestaurantService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return restaurants, nil
}

// ListMenus returns a restaurant's menus for one of the named periods. The
// old client partitioned by comparing ISO date strings; here the windows
// are real date ranges in UTC.
func (s *RestaurantService) ListMenus(ctx context.Context, restaurantID uint, period string) ([]domain.Menu, error) {
	if _, err := s.repo.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, ErrRestaurantNotFound
		}

		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	today := s.today()
	tomorrow := today.AddDate(0, 0, 1)

	var from, until time.Time
	switch period {
	case domain.MenuPeriodToday:
		from, until = today, tomorrow
	case domain.MenuPeriodUpcoming:
		from = tomorrow
	case domain.MenuPeriodPast:
		until = today
	case "":
		// no window, all menus
	default:
		return nil, ErrInvalidMenuPeriod
	}

	menus, err := s.repo.ListMenus(ctx, restaurantID, from, until)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListMenus -> %w", err)
	}

	return menus, nil
}

// CreateMenu rejects menus with a zero date or an empty dish list of either
// type, leaving the stored menus untouched.
func (s *RestaurantService) CreateMenu(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	if err := validateMenu(menu); err != nil {
		return domain.Menu{}, err
	}

	if _, err := s.repo.FindByID(ctx, menu.RestaurantID); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return domain.Menu{}, ErrRestaurantNotFound
		}

		return domain.Menu{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.CreateMenu(ctx, menu)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.CreateMenu -> %w", err)
	}

	return created, nil
}

// UpdateMenu replaces a menu's date and dish lists. The restaurant binding
// never changes on update.
func (s *RestaurantService) UpdateMenu(ctx context.Context, restaurantID uint, menu domain.Menu) (domain.Menu, error) {
	if err := validateMenu(menu); err != nil {
		return domain.Menu{}, err
	}

	existing, err := s.repo.FindMenuByID(ctx, menu.ID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return domain.Menu{}, ErrMenuNotFound
		}

		return domain.Menu{}, fmt.Errorf("s.repo.FindMenuByID -> %w", err)
	}
	if existing.RestaurantID != restaurantID {
		return domain.Menu{}, ErrMenuNotOwned
	}

	existing.Date = menu.Date
	existing.NdekkiDishes = menu.NdekkiDishes
	existing.RepasDishes = menu.RepasDishes

	updated, err := s.repo.UpdateMenu(ctx, existing)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("s.repo.UpdateMenu -> %w", err)
	}

	return updated, nil
}

func (s *RestaurantService) DeleteMenu(ctx context.Context, restaurantID, menuID uint) error {
	existing, err := s.repo.FindMenuByID(ctx, menuID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuNotFound) {
			return ErrMenuNotFound
		}

		return fmt.Errorf("s.repo.FindMenuByID -> %w", err)
	}
	if existing.RestaurantID != restaurantID {
		return ErrMenuNotOwned
	}

	if err := s.repo.DeleteMenu(ctx, menuID); err != nil {
		return fmt.Errorf("s.repo.DeleteMenu -> %w", err)
	}

	return nil
}

func (s *RestaurantService) today() time.Time {
	now := s.now().UTC()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func validateMenu(menu domain.Menu) error {
	if menu.Date.IsZero() || len(menu.NdekkiDishes) == 0 || len(menu.RepasDishes) == 0 {
		return ErrEmptyMenu
	}
	for _, dish := range append(menu.NdekkiDishes, menu.RepasDishes...) {
		if dish == "" {
			return ErrEmptyMenu
		}
	}

	return nil
}
