package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

type fakeScanUserRepo struct {
	users map[string]domain.User
}

func (f *fakeScanUserRepo) FindByStudentNumber(_ context.Context, studentNumber string) (domain.User, error) {
	user, exists := f.users[studentNumber]
	if !exists {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

type fakeScanRepo struct {
	users *fakeScanUserRepo

	scans  []domain.TicketScan
	nextID uint
}

func (f *fakeScanRepo) RecordValid(_ context.Context, scan domain.TicketScan) (domain.TicketScan, error) {
	user := f.users.users[scan.StudentNumber]

	switch scan.TicketType {
	case domain.TicketNdekki:
		if user.Balance.Ndekki < scan.Count {
			return domain.TicketScan{}, repository.ErrInsufficientTickets
		}
		user.Balance.Ndekki -= scan.Count
	case domain.TicketRepas:
		if user.Balance.Repas < scan.Count {
			return domain.TicketScan{}, repository.ErrInsufficientTickets
		}
		user.Balance.Repas -= scan.Count
	}
	f.users.users[scan.StudentNumber] = user

	f.nextID++
	scan.ID = f.nextID
	f.scans = append(f.scans, scan)

	return scan, nil
}

func (f *fakeScanRepo) RecordInvalid(_ context.Context, scan domain.TicketScan) (domain.TicketScan, error) {
	f.nextID++
	scan.ID = f.nextID
	f.scans = append(f.scans, scan)

	return scan, nil
}

func (f *fakeScanRepo) List(_ context.Context, limit int) ([]domain.TicketScan, error) {
	scans := f.scans
	if limit > 0 && len(scans) > limit {
		scans = scans[len(scans)-limit:]
	}

	return scans, nil
}

func newScanFixture() (*fakeScanUserRepo, *fakeScanRepo) {
	studentID := uint(1)
	users := &fakeScanUserRepo{
		users: map[string]domain.User{
			"ESP2023001": {
				ID:            studentID,
				FirstName:     "Aminata",
				LastName:      "Diop",
				Role:          domain.RoleStudent,
				StudentNumber: "ESP2023001",
				Balance:       domain.Balance{Ndekki: 2, Repas: 1},
			},
		},
	}

	return users, &fakeScanRepo{users: users}
}

func TestScanService_Validate(t *testing.T) {
	t.Run("valid scan debits the balance", func(t *testing.T) {
		users, repo := newScanFixture()
		svc := NewScanService(repo, users)

		scan, err := svc.Validate(context.Background(), 9, ScanOrder{
			StudentNumber: "ESP2023001",
			TicketType:    domain.TicketRepas,
			Count:         1,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ScanValid, scan.Status)
		assert.Equal(t, "Aminata Diop", scan.StudentName)
		require.NotNil(t, scan.StudentID)
		assert.Equal(t, uint(1), *scan.StudentID)
		assert.Equal(t, 0, users.users["ESP2023001"].Balance.Repas)
	})

	t.Run("uncovered balance records an invalid scan without mutation", func(t *testing.T) {
		users, repo := newScanFixture()
		svc := NewScanService(repo, users)

		scan, err := svc.Validate(context.Background(), 9, ScanOrder{
			StudentNumber: "ESP2023001",
			TicketType:    domain.TicketNdekki,
			Count:         3,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ScanInvalid, scan.Status)
		assert.Equal(t, 2, users.users["ESP2023001"].Balance.Ndekki)
		assert.Len(t, repo.scans, 1)
	})

	t.Run("unknown student records an invalid scan", func(t *testing.T) {
		users, repo := newScanFixture()
		svc := NewScanService(repo, users)

		scan, err := svc.Validate(context.Background(), 9, ScanOrder{
			StudentNumber: "ESP0000000",
			TicketType:    domain.TicketNdekki,
			Count:         1,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ScanInvalid, scan.Status)
		assert.Nil(t, scan.StudentID)
	})

	t.Run("rejects a non-positive count", func(t *testing.T) {
		users, repo := newScanFixture()
		svc := NewScanService(repo, users)

		_, err := svc.Validate(context.Background(), 9, ScanOrder{
			StudentNumber: "ESP2023001",
			TicketType:    domain.TicketNdekki,
		})

		assert.ErrorIs(t, err, ErrInvalidScanCount)
		assert.Empty(t, repo.scans)
	})
}
