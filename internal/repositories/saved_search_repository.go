package repositories

import (
	"context"

	"rentdir/internal/models"
)

// SavedSearchRepository defines the interface for saved search data access.
// The *Owned methods report records of other users as not found.
type SavedSearchRepository interface {
	ListForUser(ctx context.Context, userID int64) ([]models.SavedSearch, error)
	GetByID(ctx context.Context, id int64) (*models.SavedSearch, error)
	GetOwned(ctx context.Context, id, userID int64) (*models.SavedSearch, error)
	Create(ctx context.Context, search *models.SavedSearch) error
	DeleteOwned(ctx context.Context, id, userID int64) error
}
