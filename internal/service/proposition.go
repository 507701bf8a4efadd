package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

var (
	ErrPropositionNotFound = repository.ErrPropositionNotFound
	ErrPropositionSettled  = errors.New("proposition already reviewed")
	ErrInvalidDecision     = errors.New("decision must be accepted or refused")
	ErrEmptyProposition    = errors.New("a proposition needs a menu type, a content and a target date")
	ErrNotYourRestaurant   = errors.New("proposition targets another restaurant")
)

type PropositionRepository interface {
	Create(ctx context.Context, proposition domain.MenuProposition) (domain.MenuProposition, error)
	FindByID(ctx context.Context, id uint) (domain.MenuProposition, error)
	ListByRestaurant(ctx context.Context, restaurantID uint, status string) ([]domain.MenuProposition, error)
	ListByStudent(ctx context.Context, studentID uint) ([]domain.MenuProposition, error)
	Update(ctx context.Context, proposition domain.MenuProposition) (domain.MenuProposition, error)
}

type PropositionRestaurantRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Restaurant, error)
}

type PropositionService struct {
	repo           PropositionRepository
	restaurantRepo PropositionRestaurantRepository
}

func NewPropositionService(repo PropositionRepository, restaurantRepo PropositionRestaurantRepository) *PropositionService {
	return &PropositionService{
		repo:           repo,
		restaurantRepo: restaurantRepo,
	}
}

// Submit files a new proposition in the pending state.
func (s *PropositionService) Submit(ctx context.Context, studentID uint, proposition domain.MenuProposition) (domain.MenuProposition, error) {
	if proposition.Content == "" || proposition.TargetDate.IsZero() {
		return domain.MenuProposition{}, ErrEmptyProposition
	}
	if proposition.MenuType != domain.TicketNdekki && proposition.MenuType != domain.TicketRepas {
		return domain.MenuProposition{}, ErrEmptyProposition
	}

	if _, err := s.restaurantRepo.FindByID(ctx, proposition.RestaurantID); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return domain.MenuProposition{}, ErrRestaurantNotFound
		}

		return domain.MenuProposition{}, fmt.Errorf("s.restaurantRepo.FindByID -> %w", err)
	}

	proposition.StudentID = studentID
	proposition.Status = domain.PropositionPending
	proposition.Reply = ""

	created, err := s.repo.Create(ctx, proposition)
	if err != nil {
		return domain.MenuProposition{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PropositionService) ListByRestaurant(ctx context.Context, restaurantID uint, status string) ([]domain.MenuProposition, error) {
	propositions, err := s.repo.ListByRestaurant(ctx, restaurantID, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByRestaurant -> %w", err)
	}

	return propositions, nil
}

func (s *PropositionService) ListByStudent(ctx context.Context, studentID uint) ([]domain.MenuProposition, error) {
	propositions, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByStudent -> %w", err)
	}

	return propositions, nil
}

// Review settles a pending proposition. Only the restaurateur of the target
// restaurant may decide, and a settled proposition never changes again.
func (s *PropositionService) Review(ctx context.Context, restaurantID, propositionID uint, decision, reply string) (domain.MenuProposition, error) {
	if decision != domain.PropositionAccepted && decision != domain.PropositionRefused {
		return domain.MenuProposition{}, ErrInvalidDecision
	}

	proposition, err := s.repo.FindByID(ctx, propositionID)
	if err != nil {
		if errors.Is(err, repository.ErrPropositionNotFound) {
			return domain.MenuProposition{}, ErrPropositionNotFound
		}

		return domain.MenuProposition{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if proposition.RestaurantID != restaurantID {
		return domain.MenuProposition{}, ErrNotYourRestaurant
	}
	if proposition.Status != domain.PropositionPending {
		return domain.MenuProposition{}, ErrPropositionSettled
	}

	switch decision {
	case domain.PropositionAccepted:
		proposition.Accept(reply)
	case domain.PropositionRefused:
		proposition.Refuse(reply)
	}
	proposition.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, proposition)
	if err != nil {
		return domain.MenuProposition{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
