package repository

import (
	"context"
	"fmt"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository/dao"
)

var ErrPropositionNotFound = dao.ErrPropositionNotFound

type PropositionDAO interface {
	Insert(ctx context.Context, proposition dao.MenuProposition) (dao.MenuProposition, error)
	FindByID(ctx context.Context, id uint) (dao.MenuProposition, error)
	FindByRestaurantID(ctx context.Context, restaurantID uint, status string) ([]dao.MenuProposition, error)
	FindByStudentID(ctx context.Context, studentID uint) ([]dao.MenuProposition, error)
	Update(ctx context.Context, proposition dao.MenuProposition) (dao.MenuProposition, error)
}

type PropositionRepository struct {
	dao PropositionDAO
}

func NewPropositionRepository(dao PropositionDAO) *PropositionRepository {
	return &PropositionRepository{
		dao: dao,
	}
}

func (r *PropositionRepository) Create(ctx context.Context, proposition domain.MenuProposition) (domain.MenuProposition, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(proposition))
	if err != nil {
		return domain.MenuProposition{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PropositionRepository) FindByID(ctx context.Context, id uint) (domain.MenuProposition, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.MenuProposition{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PropositionRepository) ListByRestaurant(ctx context.Context, restaurantID uint, status string) ([]domain.MenuProposition, error) {
	found, err := r.dao.FindByRestaurantID(ctx, restaurantID, status)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRestaurantID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *PropositionRepository) ListByStudent(ctx context.Context, studentID uint) ([]domain.MenuProposition, error) {
	found, err := r.dao.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudentID -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *PropositionRepository) Update(ctx context.Context, proposition domain.MenuProposition) (domain.MenuProposition, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(proposition))
	if err != nil {
		return domain.MenuProposition{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *PropositionRepository) daoToDomain(p dao.MenuProposition) domain.MenuProposition {
	proposition := domain.MenuProposition{
		ID:           p.ID,
		StudentID:    p.StudentID,
		RestaurantID: p.RestaurantID,
		MenuType:     domain.TicketType(p.MenuType),
		Content:      p.Content,
		TargetDate:   p.TargetDate,
		Status:       p.Status,
		Reply:        p.Reply,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Student.ID != 0 {
		proposition.StudentName = p.Student.FirstName + " " + p.Student.LastName
	}

	return proposition
}

func (r *PropositionRepository) daosToDomain(propositions []dao.MenuProposition) []domain.MenuProposition {
	result := make([]domain.MenuProposition, len(propositions))
	for i, p := range propositions {
		result[i] = r.daoToDomain(p)
	}

	return result
}

func (r *PropositionRepository) domainToDao(p domain.MenuProposition) dao.MenuProposition {
	return dao.MenuProposition{
		ID:           p.ID,
		StudentID:    p.StudentID,
		RestaurantID: p.RestaurantID,
		MenuType:     string(p.MenuType),
		Content:      p.Content,
		TargetDate:   p.TargetDate,
		Status:       p.Status,
		Reply:        p.Reply,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
