package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/gateway"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

var (
	ErrInsufficientTickets = repository.ErrInsufficientTickets
	ErrPaymentFailed       = errors.New("payment failed")
	ErrRecipientNotStudent = errors.New("recipient is not a student")
	ErrShareWithSelf       = errors.New("cannot share tickets with yourself")
	ErrNothingToShare      = errors.New("at least one ticket must be shared")
	ErrNotAStudent         = errors.New("only students hold tickets")
)

type TicketRepository interface {
	RecordPurchase(ctx context.Context, purchase domain.TicketPurchase) (domain.TicketPurchase, error)
	ListPurchases(ctx context.Context, userID uint) ([]domain.TicketPurchase, error)
	RecordShare(ctx context.Context, share domain.TicketShare) (domain.TicketShare, error)
	ListShares(ctx context.Context, userID uint) ([]domain.TicketShare, error)
}

type TicketUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByStudentNumber(ctx context.Context, studentNumber string) (domain.User, error)
}

type TicketService struct {
	repo     TicketRepository
	userRepo TicketUserRepository
	payments gateway.PaymentGateway
}

func NewTicketService(repo TicketRepository, userRepo TicketUserRepository, payments gateway.PaymentGateway) *TicketService {
	return &TicketService{
		repo:     repo,
		userRepo: userRepo,
		payments: payments,
	}
}

type PurchaseOrder struct {
	NdekkiCount int
	RepasCount  int
	Channel     string
	PhoneNumber string
	CardToken   string
}

// PurchaseTickets charges the total at the gateway, then records the
// purchase and credits the balance. The price is computed server-side from
// the fixed unit prices; a failed charge leaves everything untouched.
func (s *TicketService) PurchaseTickets(ctx context.Context, userID uint, order PurchaseOrder) (domain.TicketPurchase, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.TicketPurchase{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if !user.IsStudent() {
		return domain.TicketPurchase{}, ErrNotAStudent
	}

	amount := domain.TotalPrice(order.NdekkiCount, order.RepasCount)

	receipt, err := s.payments.Charge(ctx, gateway.ChargeRequest{
		Amount:      amount,
		Channel:     order.Channel,
		PhoneNumber: order.PhoneNumber,
		CardToken:   order.CardToken,
		Description: fmt.Sprintf("%d ndekki + %d repas tickets", order.NdekkiCount, order.RepasCount),
	})
	if err != nil {
		return domain.TicketPurchase{}, fmt.Errorf("%w -> %v", ErrPaymentFailed, err)
	}

	purchase, err := s.repo.RecordPurchase(ctx, domain.TicketPurchase{
		UserID:      userID,
		NdekkiCount: order.NdekkiCount,
		RepasCount:  order.RepasCount,
		Amount:      amount,
		Channel:     order.Channel,
		PhoneNumber: order.PhoneNumber,
		Reference:   receipt.Reference,
	})
	if err != nil {
		return domain.TicketPurchase{}, fmt.Errorf("s.repo.RecordPurchase -> %w", err)
	}

	return purchase, nil
}

func (s *TicketService) ListPurchases(ctx context.Context, userID uint) ([]domain.TicketPurchase, error) {
	purchases, err := s.repo.ListPurchases(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPurchases -> %w", err)
	}

	return purchases, nil
}

type ShareOrder struct {
	RecipientStudentNumber string
	NdekkiCount            int
	RepasCount             int
}

// ShareTickets resolves the recipient by student number and moves the
// tickets. Recipients are never free text; a share either credits a real
// student record or does not happen.
func (s *TicketService) ShareTickets(ctx context.Context, senderID uint, order ShareOrder) (domain.TicketShare, error) {
	if order.NdekkiCount <= 0 && order.RepasCount <= 0 {
		return domain.TicketShare{}, ErrNothingToShare
	}

	sender, err := s.userRepo.FindByID(ctx, senderID)
	if err != nil {
		return domain.TicketShare{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if !sender.IsStudent() {
		return domain.TicketShare{}, ErrNotAStudent
	}

	recipient, err := s.userRepo.FindByStudentNumber(ctx, order.RecipientStudentNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.TicketShare{}, ErrUserNotFound
		}

		return domain.TicketShare{}, fmt.Errorf("s.userRepo.FindByStudentNumber -> %w", err)
	}
	if !recipient.IsStudent() {
		return domain.TicketShare{}, ErrRecipientNotStudent
	}
	if recipient.ID == sender.ID {
		return domain.TicketShare{}, ErrShareWithSelf
	}

	// Pre-check against the sender's current balance so the common case
	// fails fast; the repository re-checks inside the transaction.
	if order.NdekkiCount > sender.Balance.Ndekki || order.RepasCount > sender.Balance.Repas {
		return domain.TicketShare{}, ErrInsufficientTickets
	}

	share, err := s.repo.RecordShare(ctx, domain.TicketShare{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		NdekkiCount: order.NdekkiCount,
		RepasCount:  order.RepasCount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientTickets) {
			return domain.TicketShare{}, ErrInsufficientTickets
		}

		return domain.TicketShare{}, fmt.Errorf("s.repo.RecordShare -> %w", err)
	}
	share.RecipientName = recipient.FullName()

	return share, nil
}

func (s *TicketService) ListShares(ctx context.Context, userID uint) ([]domain.TicketShare, error) {
	shares, err := s.repo.ListShares(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListShares -> %w", err)
	}

	return shares, nil
}

func (s *TicketService) GetBalance(ctx context.Context, userID uint) (domain.Balance, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.Balance{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return user.Balance, nil
}
