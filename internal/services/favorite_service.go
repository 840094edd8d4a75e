package services

import (
	"context"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/repositories"
)

// FavoriteService handles a user's favorites. Adding and removing one is
// mirrored into the activity feed.
type FavoriteService struct {
	repo       repositories.FavoriteRepository
	activities *ActivityService
}

// NewFavoriteService creates a new FavoriteService. activities may be nil.
func NewFavoriteService(repo repositories.FavoriteRepository, activities *ActivityService) *FavoriteService {
	return &FavoriteService{repo: repo, activities: activities}
}

// ListFavorites resolves the user's favorites to properties, oldest first.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID int64) ([]models.Property, error) {
	return s.repo.PropertiesForUser(ctx, userID)
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID, propertyID int64) (*models.Favorite, error) {
	fav, err := s.repo.Add(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	s.activities.recordSideEffect(ctx, favoriteActivity(userID, propertyID, "added"))
	return fav, nil
}

// RemoveFavorite fails with NotFound when the pair was not favorited.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, propertyID int64) error {
	removed, err := s.repo.Remove(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.NewNotFoundError("favorite not found", nil)
	}
	s.activities.recordSideEffect(ctx, favoriteActivity(userID, propertyID, "removed"))
	return nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, propertyID int64) (bool, error) {
	return s.repo.Exists(ctx, userID, propertyID)
}

func favoriteActivity(userID, propertyID int64, action string) models.Activity {
	return models.Activity{
		UserID:     userID,
		Type:       models.ActivityFavorite,
		PropertyID: &propertyID,
		Details:    map[string]any{"action": action},
	}
}
