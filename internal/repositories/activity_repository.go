package repositories

import (
	"context"

	"rentdir/internal/models"
)

// ActivityRepository is the append-only activity log.
type ActivityRepository interface {
	Record(ctx context.Context, activity *models.Activity) error
	// Recent returns up to limit activities of userID, newest first.
	Recent(ctx context.Context, userID int64, limit int) ([]models.Activity, error)
}
