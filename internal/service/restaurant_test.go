package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esp-dakar/espeat-api/internal/domain"
	"github.com/esp-dakar/espeat-api/internal/repository"
)

type fakeRestaurantRepo struct {
	restaurants map[uint]domain.Restaurant
	menus       map[uint]domain.Menu
	nextID      uint
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{
		restaurants: map[uint]domain.Restaurant{
			1: {ID: 1, Name: "Restaurant ESP"},
			2: {ID: 2, Name: "Restaurant ENSEPT"},
		},
		menus: make(map[uint]domain.Menu),
	}
}

func (f *fakeRestaurantRepo) List(_ context.Context) ([]domain.Restaurant, error) {
	result := make([]domain.Restaurant, 0, len(f.restaurants))
	for _, r := range f.restaurants {
		result = append(result, r)
	}

	return result, nil
}

func (f *fakeRestaurantRepo) FindByID(_ context.Context, id uint) (domain.Restaurant, error) {
	restaurant, exists := f.restaurants[id]
	if !exists {
		return domain.Restaurant{}, repository.ErrRestaurantNotFound
	}

	return restaurant, nil
}

func (f *fakeRestaurantRepo) CreateMenu(_ context.Context, menu domain.Menu) (domain.Menu, error) {
	f.nextID++
	menu.ID = f.nextID
	f.menus[menu.ID] = menu

	return menu, nil
}

func (f *fakeRestaurantRepo) FindMenuByID(_ context.Context, id uint) (domain.Menu, error) {
	menu, exists := f.menus[id]
	if !exists {
		return domain.Menu{}, repository.ErrMenuNotFound
	}

	return menu, nil
}

func (f *fakeRestaurantRepo) ListMenus(_ context.Context, restaurantID uint, from, until time.Time) ([]domain.Menu, error) {
	var result []domain.Menu
	for _, m := range f.menus {
		if m.RestaurantID != restaurantID {
			continue
		}
		if !from.IsZero() && m.Date.Before(from) {
			continue
		}
		if !until.IsZero() && !m.Date.Before(until) {
			continue
		}
		result = append(result, m)
	}

	return result, nil
}

func (f *fakeRestaurantRepo) UpdateMenu(_ context.Context, menu domain.Menu) (domain.Menu, error) {
	if _, exists := f.menus[menu.ID]; !exists {
		return domain.Menu{}, repository.ErrMenuNotFound
	}
	f.menus[menu.ID] = menu

	return menu, nil
}

func (f *fakeRestaurantRepo) DeleteMenu(_ context.Context, id uint) error {
	if _, exists := f.menus[id]; !exists {
		return repository.ErrMenuNotFound
	}
	delete(f.menus, id)

	return nil
}

func validTestMenu(restaurantID uint, date time.Time) domain.Menu {
	return domain.Menu{
		RestaurantID: restaurantID,
		Date:         date,
		NdekkiDishes: []string{"Pain + Lait + Stick de café"},
		RepasDishes:  []string{"Thiéboudienne", "Yassa Poulet"},
	}
}

func TestRestaurantService_CreateMenu(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates a valid menu", func(t *testing.T) {
		repo := newFakeRestaurantRepo()
		svc := NewRestaurantService(repo)

		created, err := svc.CreateMenu(context.Background(), validTestMenu(1, date))

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("rejects missing fields without touching stored menus", func(t *testing.T) {
		repo := newFakeRestaurantRepo()
		svc := NewRestaurantService(repo)

		invalid := []domain.Menu{
			{RestaurantID: 1, NdekkiDishes: []string{"a"}, RepasDishes: []string{"b"}},          // no date
			{RestaurantID: 1, Date: date, RepasDishes: []string{"b"}},                           // no ndekki dishes
			{RestaurantID: 1, Date: date, NdekkiDishes: []string{"a"}},                          // no repas dishes
			{RestaurantID: 1, Date: date, NdekkiDishes: []string{""}, RepasDishes: []string{"b"}}, // blank dish
		}

		for _, menu := range invalid {
			_, err := svc.CreateMenu(context.Background(), menu)
			assert.ErrorIs(t, err, ErrEmptyMenu)
		}

		assert.Empty(t, repo.menus)
	})

	t.Run("rejects an unknown restaurant", func(t *testing.T) {
		svc := NewRestaurantService(newFakeRestaurantRepo())

		_, err := svc.CreateMenu(context.Background(), validTestMenu(42, date))

		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})
}

func TestRestaurantService_ListMenus(t *testing.T) {
	now := time.Date(2025, 1, 15, 13, 30, 0, 0, time.UTC)
	today := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	repo := newFakeRestaurantRepo()
	svc := NewRestaurantService(repo)
	svc.now = func() time.Time { return now }

	for _, date := range []time.Time{
		today.AddDate(0, 0, -1),
		today,
		today.AddDate(0, 0, 1),
	} {
		_, err := svc.CreateMenu(context.Background(), validTestMenu(1, date))
		require.NoError(t, err)
	}

	tests := []struct {
		period string
		want   []time.Time
	}{
		{domain.MenuPeriodToday, []time.Time{today}},
		{domain.MenuPeriodUpcoming, []time.Time{today.AddDate(0, 0, 1)}},
		{domain.MenuPeriodPast, []time.Time{today.AddDate(0, 0, -1)}},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			menus, err := svc.ListMenus(context.Background(), 1, tt.period)

			require.NoError(t, err)
			require.Len(t, menus, len(tt.want))
			for i, menu := range menus {
				assert.True(t, menu.Date.Equal(tt.want[i]))
			}
		})
	}

	t.Run("empty period returns everything", func(t *testing.T) {
		menus, err := svc.ListMenus(context.Background(), 1, "")

		require.NoError(t, err)
		assert.Len(t, menus, 3)
	})

	t.Run("rejects an unknown period", func(t *testing.T) {
		_, err := svc.ListMenus(context.Background(), 1, "someday")

		assert.ErrorIs(t, err, ErrInvalidMenuPeriod)
	})
}

func TestRestaurantService_UpdateMenu(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	repo := newFakeRestaurantRepo()
	svc := NewRestaurantService(repo)

	created, err := svc.CreateMenu(context.Background(), validTestMenu(1, date))
	require.NoError(t, err)

	t.Run("updates dishes and date", func(t *testing.T) {
		changed := created
		changed.Date = date.AddDate(0, 0, 1)
		changed.RepasDishes = []string{"Mafé Bœuf"}

		updated, err := svc.UpdateMenu(context.Background(), 1, changed)

		require.NoError(t, err)
		assert.Equal(t, []string{"Mafé Bœuf"}, updated.RepasDishes)
		assert.Equal(t, uint(1), updated.RestaurantID)
	})

	t.Run("refuses to touch another restaurant's menu", func(t *testing.T) {
		_, err := svc.UpdateMenu(context.Background(), 2, created)

		assert.ErrorIs(t, err, ErrMenuNotOwned)
	})
}

func TestRestaurantService_DeleteMenu(t *testing.T) {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	repo := newFakeRestaurantRepo()
	svc := NewRestaurantService(repo)

	created, err := svc.CreateMenu(context.Background(), validTestMenu(1, date))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMenu(context.Background(), 2, created.ID), ErrMenuNotOwned)
	require.NoError(t, svc.DeleteMenu(context.Background(), 1, created.ID))
	assert.ErrorIs(t, svc.DeleteMenu(context.Background(), 1, created.ID), ErrMenuNotFound)
}
