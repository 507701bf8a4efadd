package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

type Restaurant struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Location     string `gorm:"not null"`
	MorningHours string
	MiddayHours  string
	EveningHours string
	Menus        []Menu `gorm:"foreignKey:RestaurantID"`
}

type RestaurantDAO struct {
	db *gorm.DB
}

func NewRestaurantDAO(db *gorm.DB) *RestaurantDAO {
	return &RestaurantDAO{
		db: db,
	}
}

func (d *RestaurantDAO) List(ctx context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant

	result := d.db.WithContext(ctx).Order("id").Find(&restaurants)
	if result.Error != nil {
		return nil, result.Error
	}

	return restaurants, nil
}

func (d *RestaurantDAO) FindByID(ctx context.Context, id uint) (Restaurant, error) {
	var restaurant Restaurant

	result := d.db.WithContext(ctx).First(&restaurant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Restaurant{}, ErrRestaurantNotFound
		}

		return Restaurant{}, result.Error
	}

	return restaurant, nil
}

func (d *RestaurantDAO) Insert(ctx context.Context, restaurant Restaurant) (Restaurant, error) {
	result := d.db.WithContext(ctx).Create(&restaurant)
	if result.Error != nil {
		return Restaurant{}, result.Error
	}

	return restaurant, nil
}
