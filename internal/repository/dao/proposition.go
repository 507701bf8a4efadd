package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPropositionNotFound = errors.New("menu proposition not found")

type MenuProposition struct {
	ID           uint       `gorm:"primaryKey"`
	StudentID    uint       `gorm:"not null;index"`
	Student      User       `gorm:"foreignKey:StudentID"`
	RestaurantID uint       `gorm:"not null;index"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID"`
	MenuType     string     `gorm:"not null"` // "ndekki" or "repas"
	Content      string     `gorm:"not null"`
	TargetDate   time.Time  `gorm:"not null"`
	Status       string     `gorm:"not null"` // "pending", "accepted", or "refused"
	Reply        string
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type PropositionDAO struct {
	db *gorm.DB
}

func NewPropositionDAO(db *gorm.DB) *PropositionDAO {
	return &PropositionDAO{
		db: db,
	}
}

func (d *PropositionDAO) Insert(ctx context.Context, proposition MenuProposition) (MenuProposition, error) {
	result := d.db.WithContext(ctx).Create(&proposition)
	if result.Error != nil {
		return MenuProposition{}, result.Error
	}

	return proposition, nil
}

func (d *PropositionDAO) FindByID(ctx context.Context, id uint) (MenuProposition, error) {
	var proposition MenuProposition

	result := d.db.WithContext(ctx).Preload("Student").First(&proposition, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MenuProposition{}, ErrPropositionNotFound
		}

		return MenuProposition{}, result.Error
	}

	return proposition, nil
}

// FindByRestaurantID lists propositions for a restaurant, optionally
// narrowed to one status. Newest first.
func (d *PropositionDAO) FindByRestaurantID(ctx context.Context, restaurantID uint, status string) ([]MenuProposition, error) {
	query := d.db.WithContext(ctx).
		Preload("Student").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var propositions []MenuProposition
	result := query.Order("created_at DESC").Find(&propositions)
	if result.Error != nil {
		return nil, result.Error
	}

	return propositions, nil
}

func (d *PropositionDAO) FindByStudentID(ctx context.Context, studentID uint) ([]MenuProposition, error) {
	var propositions []MenuProposition

	result := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&propositions)
	if result.Error != nil {
		return nil, result.Error
	}

	return propositions, nil
}

func (d *PropositionDAO) Update(ctx context.Context, proposition MenuProposition) (MenuProposition, error) {
	result := d.db.WithContext(ctx).Save(&proposition)
	if result.Error != nil {
		return MenuProposition{}, result.Error
	}

	return proposition, nil
}
