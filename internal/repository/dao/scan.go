package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type TicketScan struct {
	ID            uint `gorm:"primaryKey"`
	AgentID       uint `gorm:"not null;index"`
	Agent         User `gorm:"foreignKey:AgentID"`
	StudentID     *uint
	StudentNumber string    `gorm:"not null"`
	TicketType    string    `gorm:"not null"` // "ndekki" or "repas"
	Count         int       `gorm:"not null"`
	Status        string    `gorm:"not null"` // "valid" or "invalid"
	CreatedAt     time.Time `gorm:"not null"`
}

type ScanDAO struct {
	db *gorm.DB
}

func NewScanDAO(db *gorm.DB) *ScanDAO {
	return &ScanDAO{
		db: db,
	}
}

// InsertValid records a valid scan and debits the student's balance in one
// transaction. Returns ErrInsufficientTickets without recording anything if
// the balance no longer covers the scan.
func (d *ScanDAO) InsertValid(ctx context.Context, scan TicketScan, ndekki, repas int) (TicketScan, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		debit := tx.Model(&User{}).
			Where("id = ? AND ndekki_balance >= ? AND repas_balance >= ?",
				scan.StudentID, ndekki, repas).
			Updates(map[string]interface{}{
				"ndekki_balance": gorm.Expr("ndekki_balance - ?", ndekki),
				"repas_balance":  gorm.Expr("repas_balance - ?", repas),
			})
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			return ErrInsufficientTickets
		}

		return tx.Create(&scan).Error
	})
	if err != nil {
		return TicketScan{}, err
	}

	return scan, nil
}

// InsertInvalid records a refused scan. No balance is touched.
func (d *ScanDAO) InsertInvalid(ctx context.Context, scan TicketScan) (TicketScan, error) {
	result := d.db.WithContext(ctx).Create(&scan)
	if result.Error != nil {
		return TicketScan{}, result.Error
	}

	return scan, nil
}

func (d *ScanDAO) List(ctx context.Context, limit int) ([]TicketScan, error) {
	var scans []TicketScan

	result := d.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&scans)
	if result.Error != nil {
		return nil, result.Error
	}

	return scans, nil
}
