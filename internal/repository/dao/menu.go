package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrMenuNotFound = errors.New("menu not found")

type Menu struct {
	ID           uint       `gorm:"primaryKey"`
	RestaurantID uint       `gorm:"not null;index"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID"`
	Date         time.Time  `gorm:"not null;index"`
	NdekkiDishes []string   `gorm:"not null;serializer:json"`
	RepasDishes  []string   `gorm:"not null;serializer:json"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

type MenuDAO struct {
	db *gorm.DB
}

func NewMenuDAO(db *gorm.DB) *MenuDAO {
	return &MenuDAO{
		db: db,
	}
}

func (d *MenuDAO) Insert(ctx context.Context, menu Menu) (Menu, error) {
	result := d.db.WithContext(ctx).Create(&menu)
	if result.Error != nil {
		return Menu{}, result.Error
	}

	return menu, nil
}

func (d *MenuDAO) FindByID(ctx context.Context, id uint) (Menu, error) {
	var menu Menu

	result := d.db.WithContext(ctx).First(&menu, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Menu{}, ErrMenuNotFound
		}

		return Menu{}, result.Error
	}

	return menu, nil
}

// FindByRestaurantID returns menus of a restaurant, filtered by date when
// from/until are non-zero. Results are ordered by date ascending.
func (d *MenuDAO) FindByRestaurantID(ctx context.Context, restaurantID uint, from, until time.Time) ([]Menu, error) {
	query := d.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !until.IsZero() {
		query = query.Where("date < ?", until)
	}

	var menus []Menu
	result := query.Order("date").Find(&menus)
	if result.Error != nil {
		return nil, result.Error
	}

	return menus, nil
}

func (d *MenuDAO) Update(ctx context.Context, menu Menu) (Menu, error) {
	result := d.db.WithContext(ctx).Save(&menu)
	if result.Error != nil {
		return Menu{}, result.Error
	}

	return menu, nil
}

func (d *MenuDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Menu{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuNotFound
	}

	return nil
}
