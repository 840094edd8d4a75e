package repositories

import (
	"context"
	"errors"
	"fmt"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/store"

	"go.uber.org/zap"
)

// DanglingObserver is told about every favorite whose property is missing.
type DanglingObserver interface {
	RecordIntegrityViolation(ctx context.Context, relation string)
}

// StoreFavoriteRepository is a FavoriteRepository over the entity store.
type StoreFavoriteRepository struct {
	favorites  store.Table[models.Favorite]
	users      store.Table[models.User]
	properties store.Table[models.Property]
	policy     JoinPolicy
	observer   DanglingObserver
	logger     *zap.SugaredLogger
}

// NewStoreFavoriteRepository creates a new instance of StoreFavoriteRepository.
// observer may be nil.
func NewStoreFavoriteRepository(
	favorites store.Table[models.Favorite],
	users store.Table[models.User],
	properties store.Table[models.Property],
	policy JoinPolicy,
	observer DanglingObserver,
	logger *zap.SugaredLogger,
) *StoreFavoriteRepository {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if policy == "" {
		policy = JoinStrict
	}
	return &StoreFavoriteRepository{
		favorites:  favorites,
		users:      users,
		properties: properties,
		policy:     policy,
		observer:   observer,
		logger:     logger,
	}
}

func pair(userID, propertyID int64) func(models.Favorite) bool {
	return func(f models.Favorite) bool {
		return f.UserID == userID && f.PropertyID == propertyID
	}
}

// Add favorites propertyID for userID. The user and the property must exist.
func (r *StoreFavoriteRepository) Add(ctx context.Context, userID, propertyID int64) (*models.Favorite, error) {
	if err := requireUser(ctx, r.users, userID); err != nil {
		return nil, err
	}
	if _, err := r.properties.Get(ctx, propertyID); err != nil {
		return nil, lookupError("property", propertyID, err)
	}

	fav, err := r.favorites.CreateUnless(ctx, models.Favorite{UserID: userID, PropertyID: propertyID}, pair(userID, propertyID))
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperror.NewDuplicateError("property already in favorites", err)
		}
		return nil, internalError("add favorite", err)
	}
	return &fav, nil
}

// Remove deletes the favorite for the pair and reports whether one existed.
func (r *StoreFavoriteRepository) Remove(ctx context.Context, userID, propertyID int64) (bool, error) {
	removed, err := r.favorites.DeleteFirst(ctx, pair(userID, propertyID))
	if err != nil {
		return false, internalError("remove favorite", err)
	}
	return removed, nil
}

// Exists reports whether userID has favorited propertyID.
func (r *StoreFavoriteRepository) Exists(ctx context.Context, userID, propertyID int64) (bool, error) {
	favs, err := r.favorites.List(ctx, pair(userID, propertyID))
	if err != nil {
		return false, internalError("check favorite", err)
	}
	return len(favs) > 0, nil
}

// PropertiesForUser resolves the user's favorites, oldest first, to their
// properties. A favorite whose property was deleted is handled per the
// repository's JoinPolicy.
func (r *StoreFavoriteRepository) PropertiesForUser(ctx context.Context, userID int64) ([]models.Property, error) {
	favs, err := r.favorites.List(ctx, func(f models.Favorite) bool { return f.UserID == userID })
	if err != nil {
		return nil, internalError("list favorites", err)
	}

	props := make([]models.Property, 0, len(favs))
	for _, fav := range favs {
		p, err := r.properties.Get(ctx, fav.PropertyID)
		if err == nil {
			props = append(props, p)
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, internalError("resolve favorite", err)
		}

		if r.observer != nil {
			r.observer.RecordIntegrityViolation(ctx, "favorite.property")
		}
		if r.policy == JoinStrict {
			return nil, apperror.NewIntegrityError(
				"favorite references a missing property",
				fmt.Errorf("favorite %d -> property %d: %w", fav.ID, fav.PropertyID, err),
			)
		}
		r.logger.Warnw("Skipping favorite with missing property",
			"favoriteID", fav.ID, "userID", userID, "propertyID", fav.PropertyID)
	}
	return props, nil
}
