package repository

import (
	"context"
	"fmt"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository/dao"
)

type ScanDAO interface {
	InsertValid(ctx context.Context, scan dao.TicketScan, ndekki, repas int) (dao.TicketScan, error)
	InsertInvalid(ctx context.Context, scan dao.TicketScan) (dao.TicketScan, error)
	List(ctx context.Context, limit int) ([]dao.TicketScan, error)
}

type ScanRepository struct {
	dao ScanDAO
}

func NewScanRepository(dao ScanDAO) *ScanRepository {
	return &ScanRepository{
		dao: dao,
	}
}

// RecordValid debits the student and stores the scan atomically. Returns
// ErrInsufficientTickets when the balance does not cover the scan.
func (r *ScanRepository) RecordValid(ctx context.Context, scan domain.TicketScan) (domain.TicketScan, error) {
	var ndekki, repas int
	switch scan.TicketType {
	case domain.TicketNdekki:
		ndekki = scan.Count
	case domain.TicketRepas:
		repas = scan.Count
	}

	created, err := r.dao.InsertValid(ctx, r.domainToDao(scan), ndekki, repas)
	if err != nil {
		return domain.TicketScan{}, fmt.Errorf("r.dao.InsertValid -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ScanRepository) RecordInvalid(ctx context.Context, scan domain.TicketScan) (domain.TicketScan, error) {
	created, err := r.dao.InsertInvalid(ctx, r.domainToDao(scan))
	if err != nil {
		return domain.TicketScan{}, fmt.Errorf("r.dao.InsertInvalid -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ScanRepository) List(ctx context.Context, limit int) ([]domain.TicketScan, error) {
	found, err := r.dao.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	scans := make([]domain.TicketScan, len(found))
	for i, s := range found {
		scans[i] = r.daoToDomain(s)
	}

	return scans, nil
}

func (r *ScanRepository) daoToDomain(s dao.TicketScan) domain.TicketScan {
	return domain.TicketScan{
		ID:            s.ID,
		AgentID:       s.AgentID,
		StudentID:     s.StudentID,
		StudentNumber: s.StudentNumber,
		TicketType:    domain.TicketType(s.TicketType),
		Count:         s.Count,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
	}
}

func (r *ScanRepository) domainToDao(s domain.TicketScan) dao.TicketScan {
	return dao.TicketScan{
		ID:            s.ID,
		AgentID:       s.AgentID,
		StudentID:     s.StudentID,
		StudentNumber: s.StudentNumber,
		TicketType:    string(s.TicketType),
		Count:         s.Count,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
	}
}
