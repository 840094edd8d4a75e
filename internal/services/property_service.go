package services

import (
	"context"

	"rentdir/internal/apperror"
	"rentdir/internal/geo"
	"rentdir/internal/models"
	"rentdir/internal/repositories"
	"rentdir/internal/search"
)

// ListingCache holds computed listings between property writes. Lookups
// return a slot to store a fresh listing in; an empty slot means "don't".
type ListingCache interface {
	GetListing(ctx context.Context, filter models.PropertyFilter, sort models.SortOption) (props []models.Property, slot string, ok bool)
	SetListing(ctx context.Context, slot string, props []models.Property)
	Invalidate(ctx context.Context)
}

// PropertyService handles business logic related to properties.
type PropertyService struct {
	repo    repositories.PropertyRepository
	locator geo.Locator
	cache   ListingCache
}

type PropertyOption func(*PropertyService)

// WithListingCache caches ListProperties results in c.
func WithListingCache(c ListingCache) PropertyOption {
	return func(s *PropertyService) { s.cache = c }
}

// NewPropertyService creates a new PropertyService. A nil locator selects
// geo.PlaceholderLocator.
func NewPropertyService(repo repositories.PropertyRepository, locator geo.Locator, opts ...PropertyOption) *PropertyService {
	if locator == nil {
		locator = geo.PlaceholderLocator{}
	}
	s := &PropertyService{
		repo:    repo,
		locator: locator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProperties returns the properties matching filter, ordered by sort.
func (s *PropertyService) ListProperties(ctx context.Context, filter models.PropertyFilter, sort models.SortOption) ([]models.Property, error) {
	var slot string
	if s.cache != nil {
		cached, cacheSlot, ok := s.cache.GetListing(ctx, filter, sort)
		if ok {
			return cached, nil
		}
		slot = cacheSlot
	}

	props, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := search.Query(props, filter, sort)
	if s.cache != nil {
		s.cache.SetListing(ctx, slot, result)
	}
	return result, nil
}

func (s *PropertyService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// NearbyProperties returns the properties within radius miles of origin,
// nearest first.
func (s *PropertyService) NearbyProperties(ctx context.Context, origin geo.Point, radius float64) ([]geo.NearbyProperty, error) {
	if radius < 0 {
		return nil, apperror.NewValidationError("radius must not be negative", nil)
	}
	props, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	nearby, err := geo.Within(ctx, s.locator, props, origin, radius)
	if err != nil {
		return nil, apperror.NewInternalError("failed to locate properties", err)
	}
	return nearby, nil
}

// GetProperty retrieves a single property by its ID.
func (s *PropertyService) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProperty stores a new property. Status defaults to active.
func (s *PropertyService) CreateProperty(ctx context.Context, property *models.Property) error {
	if property.Status == "" {
		property.Status = models.PropertyActive
	}
	if property.Images == nil {
		property.Images = []string{}
	}
	if property.Amenities == nil {
		property.Amenities = []string{}
	}
	if err := s.repo.Create(ctx, property); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UpdateProperty merges patch into the stored property.
func (s *PropertyService) UpdateProperty(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error) {
	property, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return property, nil
}

// DeleteProperty deletes a property by its ID. Favorites that point at it
// are kept and surface as integrity violations when resolved.
func (s *PropertyService) DeleteProperty(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}
