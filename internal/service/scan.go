package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

var ErrInvalidScanCount = errors.New("scan count must be positive")

type ScanRepository interface {
	RecordValid(ctx context.Context, scan domain.TicketScan) (domain.TicketScan, error)
	RecordInvalid(ctx context.Context, scan domain.TicketScan) (domain.TicketScan, error)
	List(ctx context.Context, limit int) ([]domain.TicketScan, error)
}

type ScanUserRepository interface {
	FindByStudentNumber(ctx context.Context, studentNumber string) (domain.User, error)
}

type ScanService struct {
	repo     ScanRepository
	userRepo ScanUserRepository
}

func NewScanService(repo ScanRepository, userRepo ScanUserRepository) *ScanService {
	return &ScanService{
		repo:     repo,
		userRepo: userRepo,
	}
}

type ScanOrder struct {
	StudentNumber string
	TicketType    domain.TicketType
	Count         int
}

// Validate resolves the scanned student number and debits the tickets. An
// unknown student or an uncovered balance yields an invalid scan that is
// recorded anyway, so the history shows refused attempts too.
func (s *ScanService) Validate(ctx context.Context, agentID uint, order ScanOrder) (domain.TicketScan, error) {
	if order.Count <= 0 {
		return domain.TicketScan{}, ErrInvalidScanCount
	}

	scan := domain.TicketScan{
		AgentID:       agentID,
		StudentNumber: order.StudentNumber,
		TicketType:    order.TicketType,
		Count:         order.Count,
	}

	student, err := s.userRepo.FindByStudentNumber(ctx, order.StudentNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return s.recordInvalid(ctx, scan)
		}

		return domain.TicketScan{}, fmt.Errorf("s.userRepo.FindByStudentNumber -> %w", err)
	}

	scan.StudentID = &student.ID
	scan.Status = domain.ScanValid

	recorded, err := s.repo.RecordValid(ctx, scan)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientTickets) {
			return s.recordInvalid(ctx, scan)
		}

		return domain.TicketScan{}, fmt.Errorf("s.repo.RecordValid -> %w", err)
	}
	recorded.StudentName = student.FullName()

	return recorded, nil
}

func (s *ScanService) History(ctx context.Context, limit int) ([]domain.TicketScan, error) {
	scans, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return scans, nil
}

func (s *ScanService) recordInvalid(ctx context.Context, scan domain.TicketScan) (domain.TicketScan, error) {
	scan.Status = domain.ScanInvalid

	recorded, err := s.repo.RecordInvalid(ctx, scan)
	if err != nil {
		return domain.TicketScan{}, fmt.Errorf("s.repo.RecordInvalid -> %w", err)
	}

	return recorded, nil
}
