package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository/dao"
)

var (
	ErrRestaurantNotFound = dao.ErrRestaurantNotFound
	ErrMenuNotFound       = dao.ErrMenuNotFound
)

type RestaurantDAO interface {
	List(ctx context.Context) ([]dao.Restaurant, error)
	FindByID(ctx context.Context, id uint) (dao.Restaurant, error)
}

type MenuDAO interface {
	Insert(ctx context.Context, menu dao.Menu) (dao.Menu, error)
	FindByID(ctx context.Context, id uint) (dao.Menu, error)
	FindByRestaurantID(ctx context.Context, restaurantID uint, from, until time.Time) ([]dao.Menu, error)
	Update(ctx context.Context, menu dao.Menu) (dao.Menu, error)
	Delete(ctx context.Context, id uint) error
}

type RestaurantRepository struct {
	dao     RestaurantDAO
	menuDAO MenuDAO
}

func NewRestaurantRepository(dao RestaurantDAO, menuDAO MenuDAO) *RestaurantRepository {
	return &RestaurantRepository{
		dao:     dao,
		menuDAO: menuDAO,
	}
}

func (r *RestaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	restaurants := make([]domain.Restaurant, len(found))
	for i, rest := range found {
		restaurants[i] = r.daoToDomain(rest)
	}

	return restaurants, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (domain.Restaurant, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RestaurantRepository) CreateMenu(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	created, err := r.menuDAO.Insert(ctx, r.menuDomainToDao(menu))
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.menuDAO.Insert -> %w", err)
	}

	return r.menuDaoToDomain(created), nil
}

func (r *RestaurantRepository) FindMenuByID(ctx context.Context, id uint) (domain.Menu, error) {
	found, err := r.menuDAO.FindByID(ctx, id)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.menuDAO.FindByID -> %w", err)
	}

	return r.menuDaoToDomain(found), nil
}

func (r *RestaurantRepository) ListMenus(ctx context.Context, restaurantID uint, from, until time.Time) ([]domain.Menu, error) {
	found, err := r.menuDAO.FindByRestaurantID(ctx, restaurantID, from, until)
	if err != nil {
		return nil, fmt.Errorf("r.menuDAO.FindByRestaurantID -> %w", err)
	}

	menus := make([]domain.Menu, len(found))
	for i, m := range found {
		menus[i] = r.menuDaoToDomain(m)
	}

	return menus, nil
}

func (r *RestaurantRepository) UpdateMenu(ctx context.Context, menu domain.Menu) (domain.Menu, error) {
	updated, err := r.menuDAO.Update(ctx, r.menuDomainToDao(menu))
	if err != nil {
		return domain.Menu{}, fmt.Errorf("r.menuDAO.Update -> %w", err)
	}

	return r.menuDaoToDomain(updated), nil
}

func (r *RestaurantRepository) DeleteMenu(ctx context.Context, id uint) error {
	if err := r.menuDAO.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.menuDAO.Delete -> %w", err)
	}

	return nil
}

func (r *RestaurantRepository) daoToDomain(rest dao.Restaurant) domain.Restaurant {
	return domain.Restaurant{
		ID:       rest.ID,
		Name:     rest.Name,
		Location: rest.Location,
		Hours: domain.ServiceHours{
			Morning: rest.MorningHours,
			Midday:  rest.MiddayHours,
			Evening: rest.EveningHours,
		},
	}
}

func (r *RestaurantRepository) menuDaoToDomain(m dao.Menu) domain.Menu {
	return domain.Menu{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Date:         m.Date,
		NdekkiDishes: m.NdekkiDishes,
		RepasDishes:  m.RepasDishes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *RestaurantRepository) menuDomainToDao(m domain.Menu) dao.Menu {
	return dao.Menu{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Date:         m.Date,
		NdekkiDishes: m.NdekkiDishes,
		RepasDishes:  m.RepasDishes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
