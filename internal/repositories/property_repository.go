package repositories

import (
	"context"

	"rentdir/internal/models"
)

// PropertyRepository defines the interface for property data access.
type PropertyRepository interface {
	GetAll(ctx context.Context) ([]models.Property, error)
	// GetWhere returns the properties for which match holds, in insertion order.
	GetWhere(ctx context.Context, match func(models.Property) bool) ([]models.Property, error)
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Update(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error)
	Delete(ctx context.Context, id int64) error
}
