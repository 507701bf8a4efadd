package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

var (
	ErrUserEmailExists     = repository.ErrUserEmailExists
	ErrStudentNumberExists = repository.ErrStudentNumberExists
	ErrWrongPassword       = errors.New("wrong password")
	ErrMissingStudentNo    = errors.New("student number is required for the student role")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type AuthService struct {
	repo AuthUserRepository
}

func NewAuthService(repo AuthUserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

// Signup creates the account. Students start with a zero ticket balance and
// must carry a student number; other roles hold no tickets at all.
func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	if user.IsStudent() && user.StudentNumber == "" {
		return domain.User{}, ErrMissingStudentNo
	}
	if !user.IsStudent() {
		user.StudentNumber = ""
	}
	user.Balance = domain.Balance{}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}
		if errors.Is(err, repository.ErrStudentNumberExists) {
			return domain.User{}, ErrStudentNumberExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// Login authenticates by email and password. The legacy client accepted any
// password for a known email; that behavior is gone on purpose.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}
