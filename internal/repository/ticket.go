package repository

import (
	"context"
	"fmt"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository/dao"
)

type TicketDAO interface {
	InsertPurchase(ctx context.Context, purchase dao.TicketPurchase) (dao.TicketPurchase, error)
	FindPurchasesByUserID(ctx context.Context, userID uint) ([]dao.TicketPurchase, error)
	InsertShare(ctx context.Context, share dao.TicketShare) (dao.TicketShare, error)
	FindSharesByUserID(ctx context.Context, userID uint) ([]dao.TicketShare, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

// RecordPurchase persists a cleared purchase and credits the buyer.
func (r *TicketRepository) RecordPurchase(ctx context.Context, purchase domain.TicketPurchase) (domain.TicketPurchase, error) {
	created, err := r.dao.InsertPurchase(ctx, dao.TicketPurchase{
		UserID:      purchase.UserID,
		NdekkiCount: purchase.NdekkiCount,
		RepasCount:  purchase.RepasCount,
		Amount:      purchase.Amount,
		Channel:     purchase.Channel,
		PhoneNumber: purchase.PhoneNumber,
		Reference:   purchase.Reference,
	})
	if err != nil {
		return domain.TicketPurchase{}, fmt.Errorf("r.dao.InsertPurchase -> %w", err)
	}

	return r.purchaseDaoToDomain(created), nil
}

func (r *TicketRepository) ListPurchases(ctx context.Context, userID uint) ([]domain.TicketPurchase, error) {
	found, err := r.dao.FindPurchasesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPurchasesByUserID -> %w", err)
	}

	purchases := make([]domain.TicketPurchase, len(found))
	for i, p := range found {
		purchases[i] = r.purchaseDaoToDomain(p)
	}

	return purchases, nil
}

// RecordShare moves tickets between two students atomically and keeps the
// ledger row.
func (r *TicketRepository) RecordShare(ctx context.Context, share domain.TicketShare) (domain.TicketShare, error) {
	created, err := r.dao.InsertShare(ctx, dao.TicketShare{
		SenderID:    share.SenderID,
		RecipientID: share.RecipientID,
		NdekkiCount: share.NdekkiCount,
		RepasCount:  share.RepasCount,
	})
	if err != nil {
		return domain.TicketShare{}, fmt.Errorf("r.dao.InsertShare -> %w", err)
	}

	return r.shareDaoToDomain(created), nil
}

func (r *TicketRepository) ListShares(ctx context.Context, userID uint) ([]domain.TicketShare, error) {
	found, err := r.dao.FindSharesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindSharesByUserID -> %w", err)
	}

	shares := make([]domain.TicketShare, len(found))
	for i, s := range found {
		shares[i] = r.shareDaoToDomain(s)
	}

	return shares, nil
}

func (r *TicketRepository) purchaseDaoToDomain(p dao.TicketPurchase) domain.TicketPurchase {
	return domain.TicketPurchase{
		ID:          p.ID,
		UserID:      p.UserID,
		NdekkiCount: p.NdekkiCount,
		RepasCount:  p.RepasCount,
		Amount:      p.Amount,
		Channel:     p.Channel,
		PhoneNumber: p.PhoneNumber,
		Reference:   p.Reference,
		CreatedAt:   p.CreatedAt,
	}
}

func (r *TicketRepository) shareDaoToDomain(s dao.TicketShare) domain.TicketShare {
	share := domain.TicketShare{
		ID:          s.ID,
		SenderID:    s.SenderID,
		RecipientID: s.RecipientID,
		NdekkiCount: s.NdekkiCount,
		RepasCount:  s.RepasCount,
		CreatedAt:   s.CreatedAt,
	}
	if s.Recipient.ID != 0 {
		share.RecipientName = s.Recipient.FirstName + " " + s.Recipient.LastName
	}

	return share
}
