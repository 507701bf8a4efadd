package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/gateway"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

type fakeTicketUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeTicketUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, exists := f.users[id]
	if !exists {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeTicketUserRepo) FindByStudentNumber(_ context.Context, studentNumber string) (domain.User, error) {
	for _, user := range f.users {
		if user.StudentNumber == studentNumber {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

type fakeTicketRepo struct {
	users *fakeTicketUserRepo

	purchases []domain.TicketPurchase
	shares    []domain.TicketShare
	nextID    uint
}

func (f *fakeTicketRepo) RecordPurchase(_ context.Context, purchase domain.TicketPurchase) (domain.TicketPurchase, error) {
	f.nextID++
	purchase.ID = f.nextID
	f.purchases = append(f.purchases, purchase)

	user := f.users.users[purchase.UserID]
	user.Balance.Ndekki += purchase.NdekkiCount
	user.Balance.Repas += purchase.RepasCount
	f.users.users[purchase.UserID] = user

	return purchase, nil
}

func (f *fakeTicketRepo) ListPurchases(_ context.Context, userID uint) ([]domain.TicketPurchase, error) {
	var result []domain.TicketPurchase
	for _, p := range f.purchases {
		if p.UserID == userID {
			result = append(result, p)
		}
	}

	return result, nil
}

func (f *fakeTicketRepo) RecordShare(_ context.Context, share domain.TicketShare) (domain.TicketShare, error) {
	sender := f.users.users[share.SenderID]
	if sender.Balance.Ndekki < share.NdekkiCount || sender.Balance.Repas < share.RepasCount {
		return domain.TicketShare{}, repository.ErrInsufficientTickets
	}

	sender.Balance.Ndekki -= share.NdekkiCount
	sender.Balance.Repas -= share.RepasCount
	f.users.users[share.SenderID] = sender

	recipient := f.users.users[share.RecipientID]
	recipient.Balance.Ndekki += share.NdekkiCount
	recipient.Balance.Repas += share.RepasCount
	f.users.users[share.RecipientID] = recipient

	f.nextID++
	share.ID = f.nextID
	f.shares = append(f.shares, share)

	return share, nil
}

func (f *fakeTicketRepo) ListShares(_ context.Context, userID uint) ([]domain.TicketShare, error) {
	var result []domain.TicketShare
	for _, s := range f.shares {
		if s.SenderID == userID || s.RecipientID == userID {
			result = append(result, s)
		}
	}

	return result, nil
}

type fakeGateway struct {
	err     error
	charges []gateway.ChargeRequest
}

func (f *fakeGateway) Charge(_ context.Context, req gateway.ChargeRequest) (gateway.Receipt, error) {
	if f.err != nil {
		return gateway.Receipt{}, f.err
	}
	f.charges = append(f.charges, req)

	return gateway.Receipt{Reference: "ref-1", Provider: "fake"}, nil
}

func newTicketFixture() (*fakeTicketUserRepo, *fakeTicketRepo, *fakeGateway) {
	users := &fakeTicketUserRepo{
		users: map[uint]domain.User{
			1: {
				ID:            1,
				Role:          domain.RoleStudent,
				StudentNumber: "ESP2023001",
				FirstName:     "Aminata",
				LastName:      "Diop",
				Balance:       domain.Balance{Ndekki: 5, Repas: 3},
			},
			2: {
				ID:            2,
				Role:          domain.RoleStudent,
				StudentNumber: "ESP2023002",
				FirstName:     "Moussa",
				LastName:      "Fall",
				Balance:       domain.Balance{Ndekki: 2, Repas: 8},
			},
			3: {
				ID:   3,
				Role: domain.RoleAgent,
			},
		},
	}

	return users, &fakeTicketRepo{users: users}, &fakeGateway{}
}

func TestTicketService_PurchaseTickets(t *testing.T) {
	t.Run("charges the computed amount and credits the balance", func(t *testing.T) {
		users, repo, gw := newTicketFixture()
		svc := NewTicketService(repo, users, gw)

		purchase, err := svc.PurchaseTickets(context.Background(), 1, PurchaseOrder{
			NdekkiCount: 2,
			RepasCount:  1,
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		require.NoError(t, err)
		assert.Equal(t, 2*domain.PriceNdekki+domain.PriceRepas, purchase.Amount)
		assert.Equal(t, "ref-1", purchase.Reference)

		require.Len(t, gw.charges, 1)
		assert.Equal(t, 200, gw.charges[0].Amount)

		// Starting balance {5,3} plus {2,1}.
		assert.Equal(t, domain.Balance{Ndekki: 7, Repas: 4}, users.users[1].Balance)
	})

	t.Run("records nothing when the charge fails", func(t *testing.T) {
		users, repo, gw := newTicketFixture()
		gw.err = errors.New("provider unreachable")
		svc := NewTicketService(repo, users, gw)

		_, err := svc.PurchaseTickets(context.Background(), 1, PurchaseOrder{
			NdekkiCount: 2,
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		assert.ErrorIs(t, err, ErrPaymentFailed)
		assert.Empty(t, repo.purchases)
		assert.Equal(t, domain.Balance{Ndekki: 5, Repas: 3}, users.users[1].Balance)
	})

	t.Run("rejects non-students", func(t *testing.T) {
		users, repo, gw := newTicketFixture()
		svc := NewTicketService(repo, users, gw)

		_, err := svc.PurchaseTickets(context.Background(), 3, PurchaseOrder{
			NdekkiCount: 1,
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		assert.ErrorIs(t, err, ErrNotAStudent)
		assert.Empty(t, gw.charges)
	})
}

func TestTicketService_ShareTickets(t *testing.T) {
	t.Run("moves tickets to the recipient", func(t *testing.T) {
		users, repo, gw := newTicketFixture()
		svc := NewTicketService(repo, users, gw)

		share, err := svc.ShareTickets(context.Background(), 1, ShareOrder{
			RecipientStudentNumber: "ESP2023002",
			NdekkiCount:            2,
			RepasCount:             1,
		})

		require.NoError(t, err)
		assert.Equal(t, uint(2), share.RecipientID)
		assert.Equal(t, "Moussa Fall", share.RecipientName)
		assert.Equal(t, domain.Balance{Ndekki: 3, Repas: 2}, users.users[1].Balance)
		assert.Equal(t, domain.Balance{Ndekki: 4, Repas: 9}, users.users[2].Balance)
	})

	t.Run("fails without mutation when the balance is short", func(t *testing.T) {
		users, repo, gw := newTicketFixture()
		svc := NewTicketService(repo, users, gw)

		_, err := svc.ShareTickets(context.Background(), 1, ShareOrder{
			RecipientStudentNumber: "ESP2023002",
			NdekkiCount:            6,
		})

		assert.ErrorIs(t, err, ErrInsufficientTickets)
		assert.Empty(t, repo.shares)
		assert.Equal(t, domain.Balance{Ndekki: 5, Repas: 3}, users.users[1].Balance)
		assert.Equal(t, domain.Balance{Ndekki: 2, Repas: 8}, users.users[2].Balance)
	})

	t.Run("rejects an unknown recipient", func(t *testing.T) {
		users, repo, gw := newTicketFixture()
		svc := NewTicketService(repo, users, gw)

		_, err := svc.ShareTickets(context.Background(), 1, ShareOrder{
			RecipientStudentNumber: "ESP0000000",
			NdekkiCount:            1,
		})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("rejects sharing with yourself", func(t *testing.T) {
		users, repo, gw := newTicketFixture()
		svc := NewTicketService(repo, users, gw)

		_, err := svc.ShareTickets(context.Background(), 1, ShareOrder{
			RecipientStudentNumber: "ESP2023001",
			NdekkiCount:            1,
		})

		assert.ErrorIs(t, err, ErrShareWithSelf)
	})

	t.Run("rejects an empty share", func(t *testing.T) {
		users, repo, gw := newTicketFixture()
		svc := NewTicketService(repo, users, gw)

		_, err := svc.ShareTickets(context.Background(), 1, ShareOrder{
			RecipientStudentNumber: "ESP2023002",
		})

		assert.ErrorIs(t, err, ErrNothingToShare)
	})
}

func TestTicketService_GetBalance(t *testing.T) {
	users, repo, gw := newTicketFixture()
	svc := NewTicketService(repo, users, gw)

	balance, err := svc.GetBalance(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, domain.Balance{Ndekki: 2, Repas: 8}, balance)
}
