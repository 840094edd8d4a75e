package repositories

import (
	"context"
	"fmt"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/store"
)

// StorePropertyRepository is a PropertyRepository over the entity store.
type StorePropertyRepository struct {
	properties store.Table[models.Property]
}

// NewStorePropertyRepository creates a new instance of StorePropertyRepository.
func NewStorePropertyRepository(properties store.Table[models.Property]) *StorePropertyRepository {
	return &StorePropertyRepository{properties: properties}
}

// GetAll retrieves all properties in insertion order.
func (r *StorePropertyRepository) GetAll(ctx context.Context) ([]models.Property, error) {
	return r.GetWhere(ctx, nil)
}

func (r *StorePropertyRepository) GetWhere(ctx context.Context, match func(models.Property) bool) ([]models.Property, error) {
	props, err := r.properties.List(ctx, match)
	if err != nil {
		return nil, internalError("list properties", err)
	}
	return props, nil
}

// GetByID retrieves a single property by its ID.
func (r *StorePropertyRepository) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	p, err := r.properties.Get(ctx, id)
	if err != nil {
		return nil, lookupError("property", id, err)
	}
	return &p, nil
}

// Create stores a new property, filling in its ID and creation time.
func (r *StorePropertyRepository) Create(ctx context.Context, property *models.Property) error {
	created, err := r.properties.Create(ctx, *property)
	if err != nil {
		return internalError("create property", err)
	}
	*property = created
	return nil
}

// Update merges patch into the stored property.
func (r *StorePropertyRepository) Update(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error) {
	p, err := r.properties.Update(ctx, id, patch.Apply)
	if err != nil {
		return nil, lookupError("property", id, err)
	}
	return &p, nil
}

// Delete removes a property. Favorites pointing at it are left in place.
func (r *StorePropertyRepository) Delete(ctx context.Context, id int64) error {
	removed, err := r.properties.Delete(ctx, id)
	if err != nil {
		return internalError("delete property", err)
	}
	if !removed {
		return apperror.NewNotFoundError("property not found", fmt.Errorf("property %d: %w", id, store.ErrNotFound))
	}
	return nil
}
