package repositories

import (
	"context"
	"slices"

	"rentdir/internal/models"
	"rentdir/internal/store"
)

// StoreActivityRepository is an ActivityRepository over the entity store.
type StoreActivityRepository struct {
	activities store.Table[models.Activity]
	users      store.Table[models.User]
	properties store.Table[models.Property]
}

// NewStoreActivityRepository creates a new instance of StoreActivityRepository.
// Non-nil users and properties tables make Record check that the activity's
// user and property exist.
func NewStoreActivityRepository(
	activities store.Table[models.Activity],
	users store.Table[models.User],
	properties store.Table[models.Property],
) *StoreActivityRepository {
	return &StoreActivityRepository{activities: activities, users: users, properties: properties}
}

// Record appends an activity, filling in its ID and creation time.
func (r *StoreActivityRepository) Record(ctx context.Context, activity *models.Activity) error {
	if err := requireUser(ctx, r.users, activity.UserID); err != nil {
		return err
	}
	if activity.PropertyID != nil && r.properties != nil {
		if _, err := r.properties.Get(ctx, *activity.PropertyID); err != nil {
			return lookupError("property", *activity.PropertyID, err)
		}
	}
	created, err := r.activities.Create(ctx, *activity)
	if err != nil {
		return internalError("record activity", err)
	}
	*activity = created
	return nil
}

// Recent orders by creation time, newest first; activities created at the same
// instant are ordered by id, the later insert first.
func (r *StoreActivityRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
	acts, err := r.activities.List(ctx, func(a models.Activity) bool { return a.UserID == userID })
	if err != nil {
		return nil, internalError("list activities", err)
	}

	slices.SortStableFunc(acts, func(a, b models.Activity) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	if limit >= 0 && len(acts) > limit {
		acts = acts[:limit]
	}
	return acts, nil
}
