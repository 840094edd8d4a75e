package repositories_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/repositories"
	"rentdir/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock advances one second per call so creation times are distinct.
func stepClock() store.Clock {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func fixedClock() store.Clock {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

type countingObserver struct {
	mu    sync.Mutex
	count map[string]int
}

func (o *countingObserver) RecordIntegrityViolation(_ context.Context, relation string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.count == nil {
		o.count = map[string]int{}
	}
	o.count[relation]++
}

// seedUsers creates n accounts with ids 1 to n.
func seedUsers(t *testing.T, s *store.Store, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		u, err := s.Users.Create(context.Background(), models.User{
			Username: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
		})
		require.NoError(t, err)
		require.Equal(t, int64(i), u.ID)
	}
}

func seedProperty(t *testing.T, repo *repositories.StorePropertyRepository, title string, price int) models.Property {
	t.Helper()
	p := models.Property{Title: title, City: "Springfield", Price: price, Status: models.PropertyActive}
	require.NoError(t, repo.Create(context.Background(), &p))
	return p
}

func TestStoreUserRepository_UniqueUsernameAndEmail(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewStoreUserRepository(store.NewMemoryStore().Users)

	user := &models.User{Username: "jane", Email: "jane@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, int64(1), user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	err := repo.Create(ctx, &models.User{Username: "jane", Email: "other@example.com"})
	assert.True(t, apperror.IsDuplicate(err))

	err = repo.Create(ctx, &models.User{Username: "other", Email: "jane@example.com"})
	assert.True(t, apperror.IsDuplicate(err))

	found, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	found, err = repo.GetByUsername(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", found.Email)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.True(t, apperror.IsNotFound(err))

	_, err = repo.GetByID(ctx, 42)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStorePropertyRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewStorePropertyRepository(store.NewMemoryStore().Properties)

	a := seedProperty(t, repo, "Loft", 1500)
	b := seedProperty(t, repo, "Cottage", 2200)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	price := 1600
	updated, err := repo.Update(ctx, a.ID, models.PropertyPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 1600, updated.Price)
	assert.Equal(t, "Loft", updated.Title)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)

	_, err = repo.Update(ctx, 99, models.PropertyPatch{Price: &price})
	assert.True(t, apperror.IsNotFound(err))

	cheap, err := repo.GetWhere(ctx, func(p models.Property) bool { return p.Price < 2000 })
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, a.ID, cheap[0].ID)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.True(t, apperror.IsNotFound(repo.Delete(ctx, a.ID)))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)

	c := seedProperty(t, repo, "Studio", 900)
	assert.Equal(t, int64(3), c.ID, "ids are never reused")
}

func newFavoriteFixture(t *testing.T, policy repositories.JoinPolicy) (*repositories.StoreFavoriteRepository, *repositories.StorePropertyRepository, *countingObserver) {
	t.Helper()
	s := store.NewMemoryStore(store.WithClock(stepClock()))
	seedUsers(t, s, 8)
	props := repositories.NewStorePropertyRepository(s.Properties)
	obs := &countingObserver{}
	favs := repositories.NewStoreFavoriteRepository(s.Favorites, s.Users, s.Properties, policy, obs, nil)
	return favs, props, obs
}

func TestStoreFavoriteRepository_AddRemoveExists(t *testing.T) {
	ctx := context.Background()
	favs, props, _ := newFavoriteFixture(t, repositories.JoinStrict)
	p := seedProperty(t, props, "Loft", 1500)

	fav, err := favs.Add(ctx, 7, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fav.ID)

	_, err = favs.Add(ctx, 7, p.ID)
	assert.True(t, apperror.IsDuplicate(err))

	_, err = favs.Add(ctx, 7, 404)
	assert.True(t, apperror.IsNotFound(err))

	ok, err := favs.Exists(ctx, 7, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = favs.Exists(ctx, 8, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := favs.Remove(ctx, 7, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = favs.Remove(ctx, 7, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	fav, err = favs.Add(ctx, 7, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fav.ID)
}

func TestStoreFavoriteRepository_UserMustExist(t *testing.T) {
	ctx := context.Background()
	favs, props, _ := newFavoriteFixture(t, repositories.JoinStrict)
	p := seedProperty(t, props, "Loft", 1500)

	_, err := favs.Add(ctx, 42, p.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "user not found")

	ok, err := favs.Exists(ctx, 42, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	fav, err := favs.Add(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fav.ID, "a rejected favorite does not consume an id")
}

func TestStoreFavoriteRepository_ConcurrentAddKeepsOnePair(t *testing.T) {
	ctx := context.Background()
	favs, props, _ := newFavoriteFixture(t, repositories.JoinStrict)
	p := seedProperty(t, props, "Loft", 1500)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := favs.Add(ctx, 1, p.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestStoreFavoriteRepository_PropertiesForUser(t *testing.T) {
	ctx := context.Background()
	favs, props, _ := newFavoriteFixture(t, repositories.JoinStrict)
	a := seedProperty(t, props, "Loft", 1500)
	b := seedProperty(t, props, "Cottage", 2200)

	_, err := favs.Add(ctx, 1, b.ID)
	require.NoError(t, err)
	_, err = favs.Add(ctx, 1, a.ID)
	require.NoError(t, err)
	_, err = favs.Add(ctx, 2, a.ID)
	require.NoError(t, err)

	got, err := favs.PropertiesForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID, "favorites resolve in the order they were added")
	assert.Equal(t, a.ID, got[1].ID)

	got, err = favs.PropertiesForUser(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreFavoriteRepository_DanglingFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("strict", func(t *testing.T) {
		favs, props, obs := newFavoriteFixture(t, repositories.JoinStrict)
		p := seedProperty(t, props, "Loft", 1500)
		_, err := favs.Add(ctx, 1, p.ID)
		require.NoError(t, err)
		require.NoError(t, props.Delete(ctx, p.ID))

		_, err = favs.PropertiesForUser(ctx, 1)
		assert.True(t, apperror.IsIntegrity(err))
		assert.Equal(t, 1, obs.count["favorite.property"])

		ok, err := favs.Exists(ctx, 1, p.ID)
		require.NoError(t, err)
		assert.True(t, ok, "deleting a property leaves its favorites in place")
	})

	t.Run("lenient", func(t *testing.T) {
		favs, props, obs := newFavoriteFixture(t, repositories.JoinLenient)
		gone := seedProperty(t, props, "Loft", 1500)
		kept := seedProperty(t, props, "Cottage", 2200)
		_, err := favs.Add(ctx, 1, gone.ID)
		require.NoError(t, err)
		_, err = favs.Add(ctx, 1, kept.ID)
		require.NoError(t, err)
		require.NoError(t, props.Delete(ctx, gone.ID))

		got, err := favs.PropertiesForUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, kept.ID, got[0].ID)
		assert.Equal(t, 1, obs.count["favorite.property"])
	})
}

func TestStoreSavedSearchRepository_Ownership(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	seedUsers(t, s, 2)
	repo := repositories.NewStoreSavedSearchRepository(s.SavedSearches, s.Users)

	loc := "Springfield"
	search := &models.SavedSearch{
		UserID: 1,
		Name:   "Downtown",
		SearchCriteria: models.SearchCriteria{
			Location: &loc,
			Filters:  map[string]bool{models.FlagPetFriendly: true},
		},
	}
	require.NoError(t, repo.Create(ctx, search))
	assert.Equal(t, int64(1), search.ID)

	got, err := repo.GetOwned(ctx, search.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Downtown", got.Name)
	assert.True(t, got.Filters[models.FlagPetFriendly])

	_, err = repo.GetOwned(ctx, search.ID, 2)
	assert.True(t, apperror.IsNotFound(err), "another user's search looks missing")

	assert.True(t, apperror.IsNotFound(repo.DeleteOwned(ctx, search.ID, 2)))

	mine, err := repo.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, repo.DeleteOwned(ctx, search.ID, 1))
	assert.True(t, apperror.IsNotFound(repo.DeleteOwned(ctx, search.ID, 1)))

	_, err = repo.GetByID(ctx, search.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStoreSavedSearchRepository_UserMustExist(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	seedUsers(t, s, 1)
	repo := repositories.NewStoreSavedSearchRepository(s.SavedSearches, s.Users)

	err := repo.Create(ctx, &models.SavedSearch{UserID: 42, Name: "Ghost"})
	assert.True(t, apperror.IsNotFound(err))

	left, err := repo.ListForUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, left)

	search := &models.SavedSearch{UserID: 1, Name: "Downtown"}
	require.NoError(t, repo.Create(ctx, search))
	assert.Equal(t, int64(1), search.ID)
}

func TestStoreAlertRepository_UpdateOwned(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	seedUsers(t, s, 2)
	repo := repositories.NewStoreAlertRepository(s.Alerts, s.Users)

	maxPrice := 2000
	alert := &models.Alert{
		UserID:  1,
		Name:    "Cheap pets",
		Enabled: true,
		SearchCriteria: models.SearchCriteria{
			MaxPrice: &maxPrice,
			Filters:  map[string]bool{models.FlagPetFriendly: true, models.FlagInUnitLaundry: true},
		},
	}
	require.NoError(t, repo.Create(ctx, alert))

	disabled := false
	updated, err := repo.UpdateOwned(ctx, alert.ID, 1, models.AlertPatch{
		Enabled: &disabled,
		Filters: map[string]bool{models.FlagInUnitLaundry: true},
	})
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Equal(t, "Cheap pets", updated.Name)
	assert.Equal(t, 2000, *updated.MaxPrice)
	assert.Equal(t, map[string]bool{models.FlagInUnitLaundry: true}, updated.Filters, "filters are replaced, not merged")

	_, err = repo.UpdateOwned(ctx, alert.ID, 2, models.AlertPatch{Enabled: &disabled})
	assert.True(t, apperror.IsNotFound(err))

	_, err = repo.UpdateOwned(ctx, 77, 1, models.AlertPatch{Enabled: &disabled})
	assert.True(t, apperror.IsNotFound(err))

	assert.True(t, apperror.IsNotFound(repo.DeleteOwned(ctx, alert.ID, 2)))
	require.NoError(t, repo.DeleteOwned(ctx, alert.ID, 1))

	left, err := repo.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestStoreAlertRepository_UserMustExist(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	seedUsers(t, s, 1)
	repo := repositories.NewStoreAlertRepository(s.Alerts, s.Users)

	err := repo.Create(ctx, &models.Alert{UserID: 42, Name: "Ghost", Enabled: true})
	assert.True(t, apperror.IsNotFound(err))

	left, err := repo.ListForUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, left)

	alert := &models.Alert{UserID: 1, Name: "Cheap", Enabled: true}
	require.NoError(t, repo.Create(ctx, alert))
	assert.Equal(t, int64(1), alert.ID)
}

func TestStoreActivityRepository_Recent(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first with limit", func(t *testing.T) {
		repo := repositories.NewStoreActivityRepository(store.NewMemoryStore(store.WithClock(stepClock())).Activities, nil, nil)
		for _, typ := range []models.ActivityType{models.ActivityView, models.ActivityFavorite, models.ActivitySearch} {
			require.NoError(t, repo.Record(ctx, &models.Activity{UserID: 1, Type: typ}))
		}
		require.NoError(t, repo.Record(ctx, &models.Activity{UserID: 2, Type: models.ActivityAlert}))

		got, err := repo.Recent(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, models.ActivitySearch, got[0].Type)
		assert.Equal(t, models.ActivityFavorite, got[1].Type)

		got, err = repo.Recent(ctx, 1, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("same timestamp orders by id", func(t *testing.T) {
		repo := repositories.NewStoreActivityRepository(store.NewMemoryStore(store.WithClock(fixedClock())).Activities, nil, nil)
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Record(ctx, &models.Activity{UserID: 1, Type: models.ActivityView}))
		}

		got, err := repo.Recent(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int64{3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
	})
}

func TestStoreActivityRepository_PropertyMustExist(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	seedUsers(t, s, 1)
	props := repositories.NewStorePropertyRepository(s.Properties)
	repo := repositories.NewStoreActivityRepository(s.Activities, s.Users, s.Properties)

	missing := int64(9)
	err := repo.Record(ctx, &models.Activity{UserID: 1, Type: models.ActivityView, PropertyID: &missing})
	assert.True(t, apperror.IsNotFound(err))

	p := seedProperty(t, props, "Loft", 1500)
	act := &models.Activity{UserID: 1, Type: models.ActivityView, PropertyID: &p.ID}
	require.NoError(t, repo.Record(ctx, act))
	assert.Equal(t, int64(1), act.ID, "a rejected activity does not consume an id")
}

func TestStoreActivityRepository_UserMustExist(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	seedUsers(t, s, 1)
	repo := repositories.NewStoreActivityRepository(s.Activities, s.Users, s.Properties)

	err := repo.Record(ctx, &models.Activity{UserID: 42, Type: models.ActivitySearch})
	assert.True(t, apperror.IsNotFound(err))

	got, err := repo.Recent(ctx, 42, 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	act := &models.Activity{UserID: 1, Type: models.ActivitySearch}
	require.NoError(t, repo.Record(ctx, act))
	assert.Equal(t, int64(1), act.ID)
}
