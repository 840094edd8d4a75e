package services

import (
	"context"

	"rentdir/internal/models"
	"rentdir/internal/repositories"
	"rentdir/internal/search"
)

// SavedSearchService manages saved searches and re-applies them.
type SavedSearchService struct {
	repo       repositories.SavedSearchRepository
	properties repositories.PropertyRepository
	activities *ActivityService
}

// NewSavedSearchService creates a new SavedSearchService. activities may be nil.
func NewSavedSearchService(repo repositories.SavedSearchRepository, properties repositories.PropertyRepository, activities *ActivityService) *SavedSearchService {
	return &SavedSearchService{repo: repo, properties: properties, activities: activities}
}

func (s *SavedSearchService) ListSavedSearches(ctx context.Context, userID int64) ([]models.SavedSearch, error) {
	return s.repo.ListForUser(ctx, userID)
}

// GetSavedSearch reports a search owned by someone else as not found.
func (s *SavedSearchService) GetSavedSearch(ctx context.Context, id, userID int64) (*models.SavedSearch, error) {
	return s.repo.GetOwned(ctx, id, userID)
}

// CreateSavedSearch stores the search and records a search activity.
func (s *SavedSearchService) CreateSavedSearch(ctx context.Context, saved *models.SavedSearch) error {
	if saved.Filters == nil {
		saved.Filters = map[string]bool{}
	}
	if err := s.repo.Create(ctx, saved); err != nil {
		return err
	}
	s.activities.recordSideEffect(ctx, models.Activity{
		UserID:  saved.UserID,
		Type:    models.ActivitySearch,
		Details: map[string]any{"name": saved.Name},
	})
	return nil
}

func (s *SavedSearchService) DeleteSavedSearch(ctx context.Context, id, userID int64) error {
	return s.repo.DeleteOwned(ctx, id, userID)
}

// Results re-applies a saved search to the current listings.
func (s *SavedSearchService) Results(ctx context.Context, id, userID int64) ([]models.Property, error) {
	saved, err := s.repo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	props, err := s.properties.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return search.Query(props, saved.Filter(), models.SortRecommended), nil
}
