package repositories

import (
	"context"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/store"
)

// StoreSavedSearchRepository is a SavedSearchRepository over the entity store.
type StoreSavedSearchRepository struct {
	searches store.Table[models.SavedSearch]
	users    store.Table[models.User]
}

// NewStoreSavedSearchRepository creates a new instance of StoreSavedSearchRepository.
// When users is non-nil, a search's owner must exist.
func NewStoreSavedSearchRepository(searches store.Table[models.SavedSearch], users store.Table[models.User]) *StoreSavedSearchRepository {
	return &StoreSavedSearchRepository{searches: searches, users: users}
}

func (r *StoreSavedSearchRepository) ListForUser(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	searches, err := r.searches.List(ctx, func(s models.SavedSearch) bool { return s.UserID == userID })
	if err != nil {
		return nil, internalError("list saved searches", err)
	}
	return searches, nil
}

func (r *StoreSavedSearchRepository) GetByID(ctx context.Context, id int64) (*models.SavedSearch, error) {
	s, err := r.searches.Get(ctx, id)
	if err != nil {
		return nil, lookupError("saved search", id, err)
	}
	return &s, nil
}

func (r *StoreSavedSearchRepository) GetOwned(ctx context.Context, id, userID int64) (*models.SavedSearch, error) {
	s, err := getOwned(ctx, r.searches, "saved search", id, userID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreSavedSearchRepository) Create(ctx context.Context, search *models.SavedSearch) error {
	if err := requireUser(ctx, r.users, search.UserID); err != nil {
		return err
	}
	created, err := r.searches.Create(ctx, *search)
	if err != nil {
		return internalError("save search", err)
	}
	*search = created
	return nil
}

func (r *StoreSavedSearchRepository) DeleteOwned(ctx context.Context, id, userID int64) error {
	if _, err := getOwned(ctx, r.searches, "saved search", id, userID); err != nil {
		return err
	}
	removed, err := r.searches.Delete(ctx, id)
	if err != nil {
		return internalError("delete saved search", err)
	}
	if !removed {
		return apperror.NewNotFoundError("saved search not found", store.ErrNotFound)
	}
	return nil
}
