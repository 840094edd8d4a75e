package repositories

import (
	"context"

	"rentdir/internal/models"
)

// JoinPolicy decides what resolving a favorite whose property is gone does.
type JoinPolicy string

const (
	// JoinStrict fails the whole listing with an IntegrityError.
	JoinStrict JoinPolicy = "strict"
	// JoinLenient drops the orphaned favorite and logs a warning.
	JoinLenient JoinPolicy = "lenient"
)

// FavoriteRepository maintains favorites and resolves them to properties.
type FavoriteRepository interface {
	// Add fails with a DuplicateError when the pair is already favorited.
	Add(ctx context.Context, userID, propertyID int64) (*models.Favorite, error)
	Remove(ctx context.Context, userID, propertyID int64) (bool, error)
	Exists(ctx context.Context, userID, propertyID int64) (bool, error)
	PropertiesForUser(ctx context.Context, userID int64) ([]models.Property, error)
}
