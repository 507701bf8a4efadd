package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrShareNotFound = errors.New("ticket share not found")

type TicketPurchase struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	User        User   `gorm:"foreignKey:UserID"`
	NdekkiCount int    `gorm:"not null"`
	RepasCount  int    `gorm:"not null"`
	Amount      int    `gorm:"not null"`
	Channel     string `gorm:"not null"` // "wave", "orange_money", or "card"
	PhoneNumber string
	Reference   string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type TicketShare struct {
	ID          uint      `gorm:"primaryKey"`
	SenderID    uint      `gorm:"not null;index"`
	Sender      User      `gorm:"foreignKey:SenderID"`
	RecipientID uint      `gorm:"not null;index"`
	Recipient   User      `gorm:"foreignKey:RecipientID"`
	NdekkiCount int       `gorm:"not null"`
	RepasCount  int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// InsertPurchase records a successful purchase and credits the buyer's
// balance in one transaction. The payment itself has already cleared at the
// gateway by the time this runs.
func (d *TicketDAO) InsertPurchase(ctx context.Context, purchase TicketPurchase) (TicketPurchase, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		result := tx.Model(&User{}).
			Where("id = ?", purchase.UserID).
			Updates(map[string]interface{}{
				"ndekki_balance": gorm.Expr("ndekki_balance + ?", purchase.NdekkiCount),
				"repas_balance":  gorm.Expr("repas_balance + ?", purchase.RepasCount),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		return TicketPurchase{}, err
	}

	return purchase, nil
}

func (d *TicketDAO) FindPurchasesByUserID(ctx context.Context, userID uint) ([]TicketPurchase, error) {
	var purchases []TicketPurchase

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases)
	if result.Error != nil {
		return nil, result.Error
	}

	return purchases, nil
}

// InsertShare debits the sender, credits the recipient and records the share
// row in one transaction, so the two balances can never diverge from the
// ledger.
func (d *TicketDAO) InsertShare(ctx context.Context, share TicketShare) (TicketShare, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		debit := tx.Model(&User{}).
			Where("id = ? AND ndekki_balance >= ? AND repas_balance >= ?",
				share.SenderID, share.NdekkiCount, share.RepasCount).
			Updates(map[string]interface{}{
				"ndekki_balance": gorm.Expr("ndekki_balance - ?", share.NdekkiCount),
				"repas_balance":  gorm.Expr("repas_balance - ?", share.RepasCount),
			})
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			return ErrInsufficientTickets
		}

		credit := tx.Model(&User{}).
			Where("id = ?", share.RecipientID).
			Updates(map[string]interface{}{
				"ndekki_balance": gorm.Expr("ndekki_balance + ?", share.NdekkiCount),
				"repas_balance":  gorm.Expr("repas_balance + ?", share.RepasCount),
			})
		if credit.Error != nil {
			return credit.Error
		}
		if credit.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return tx.Create(&share).Error
	})
	if err != nil {
		return TicketShare{}, err
	}

	return share, nil
}

func (d *TicketDAO) FindSharesByUserID(ctx context.Context, userID uint) ([]TicketShare, error) {
	var shares []TicketShare

	result := d.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&shares)
	if result.Error != nil {
		return nil, result.Error
	}

	return shares, nil
}
