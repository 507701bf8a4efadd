package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

type fakeAuthUserRepo struct {
	usersByEmail map[string]domain.User
	nextID       uint
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{
		usersByEmail: make(map[string]domain.User),
		nextID:       1,
	}
}

func (f *fakeAuthUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.usersByEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.usersByEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, exists := f.usersByEmail[email]
	if !exists {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("creates a student with a zeroed balance", func(t *testing.T) {
		svc := NewAuthService(newFakeAuthUserRepo())

		created, err := svc.Signup(context.Background(), domain.User{
			Email:         "aminata.diop@esp.sn",
			Password:      "passer123",
			FirstName:     "Aminata",
			LastName:      "Diop",
			Role:          domain.RoleStudent,
			StudentNumber: "ESP2023001",
			Balance:       domain.Balance{Ndekki: 99, Repas: 99},
		})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, domain.Balance{}, created.Balance)
		assert.NotEqual(t, "passer123", created.Password)
	})

	t.Run("rejects a student without a student number", func(t *testing.T) {
		svc := NewAuthService(newFakeAuthUserRepo())

		_, err := svc.Signup(context.Background(), domain.User{
			Email:     "moussa.fall@esp.sn",
			Password:  "passer123",
			FirstName: "Moussa",
			LastName:  "Fall",
			Role:      domain.RoleStudent,
		})

		assert.ErrorIs(t, err, ErrMissingStudentNo)
	})

	t.Run("clears the student number for non-student roles", func(t *testing.T) {
		svc := NewAuthService(newFakeAuthUserRepo())

		created, err := svc.Signup(context.Background(), domain.User{
			Email:         "fatou.ndiaye@esp.sn",
			Password:      "passer123",
			FirstName:     "Fatou",
			LastName:      "Ndiaye",
			Role:          domain.RoleAgent,
			StudentNumber: "ESP2023099",
		})

		require.NoError(t, err)
		assert.Empty(t, created.StudentNumber)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := newFakeAuthUserRepo()
		svc := NewAuthService(repo)

		user := domain.User{
			Email:         "aminata.diop@esp.sn",
			Password:      "passer123",
			FirstName:     "Aminata",
			LastName:      "Diop",
			Role:          domain.RoleStudent,
			StudentNumber: "ESP2023001",
		}

		_, err := svc.Signup(context.Background(), user)
		require.NoError(t, err)

		user.StudentNumber = "ESP2023002"
		_, err = svc.Signup(context.Background(), user)
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeAuthUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("passer123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.usersByEmail["aminata.diop@esp.sn"] = domain.User{
		ID:       1,
		Email:    "aminata.diop@esp.sn",
		Password: string(hash),
		Role:     domain.RoleStudent,
	}

	svc := NewAuthService(repo)

	t.Run("succeeds with the right password", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "aminata.diop@esp.sn", "passer123")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("fails with the wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "aminata.diop@esp.sn", "nope1234")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("fails for an unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@esp.sn", "passer123")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
