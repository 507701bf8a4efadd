package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists     = errors.New("user already exists")
	ErrStudentNumberExists = errors.New("student number already taken")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientTickets = errors.New("insufficient ticket balance")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`

	Role string `gorm:"not null"` // "student", "agent", "manager", or "restaurateur"

	StudentNumber *string `gorm:"uniqueIndex"`

	NdekkiBalance int `gorm:"not null;default:0"`
	RepasBalance  int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			if strings.Contains(err.Message, `"uni_users_email"`) {
				return User{}, ErrUserEmailExists
			}
			if strings.Contains(err.Message, `"idx_users_student_number"`) {
				return User{}, ErrStudentNumberExists
			}
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByStudentNumber(ctx context.Context, studentNumber string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "student_number = ?", studentNumber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) List(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Save(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CreditBalance adds the given counts to a student's balance, atomically at
// the row level.
func (d *UserDAO) CreditBalance(ctx context.Context, userID uint, ndekki, repas int) error {
	result := d.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"ndekki_balance": gorm.Expr("ndekki_balance + ?", ndekki),
			"repas_balance":  gorm.Expr("repas_balance + ?", repas),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DebitBalance subtracts the given counts, guarding against a negative
// balance inside the same statement.
func (d *UserDAO) DebitBalance(ctx context.Context, userID uint, ndekki, repas int) error {
	result := d.db.WithContext(ctx).Model(&User{}).
		Where("id = ? AND ndekki_balance >= ? AND repas_balance >= ?", userID, ndekki, repas).
		Updates(map[string]interface{}{
			"ndekki_balance": gorm.Expr("ndekki_balance - ?", ndekki),
			"repas_balance":  gorm.Expr("repas_balance - ?", repas),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientTickets
	}

	return nil
}
