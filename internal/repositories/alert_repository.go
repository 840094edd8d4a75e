package repositories

import (
	"context"

	"rentdir/internal/models"
)

// AlertRepository defines the interface for alert data access.
// The *Owned methods report records of other users as not found.
type AlertRepository interface {
	ListForUser(ctx context.Context, userID int64) ([]models.Alert, error)
	GetByID(ctx context.Context, id int64) (*models.Alert, error)
	GetOwned(ctx context.Context, id, userID int64) (*models.Alert, error)
	Create(ctx context.Context, alert *models.Alert) error
	UpdateOwned(ctx context.Context, id, userID int64, patch models.AlertPatch) (*models.Alert, error)
	DeleteOwned(ctx context.Context, id, userID int64) error
}
