package repositories

import (
	"context"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/store"
)

// StoreAlertRepository is an AlertRepository over the entity store.
type StoreAlertRepository struct {
	alerts store.Table[models.Alert]
	users  store.Table[models.User]
}

// NewStoreAlertRepository creates a new instance of StoreAlertRepository.
// When users is non-nil, an alert's owner must exist.
func NewStoreAlertRepository(alerts store.Table[models.Alert], users store.Table[models.User]) *StoreAlertRepository {
	return &StoreAlertRepository{alerts: alerts, users: users}
}

func (r *StoreAlertRepository) ListForUser(ctx context.Context, userID int64) ([]models.Alert, error) {
	alerts, err := r.alerts.List(ctx, func(a models.Alert) bool { return a.UserID == userID })
	if err != nil {
		return nil, internalError("list alerts", err)
	}
	return alerts, nil
}

func (r *StoreAlertRepository) GetByID(ctx context.Context, id int64) (*models.Alert, error) {
	a, err := r.alerts.Get(ctx, id)
	if err != nil {
		return nil, lookupError("alert", id, err)
	}
	return &a, nil
}

func (r *StoreAlertRepository) GetOwned(ctx context.Context, id, userID int64) (*models.Alert, error) {
	a, err := getOwned(ctx, r.alerts, "alert", id, userID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *StoreAlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	if err := requireUser(ctx, r.users, alert.UserID); err != nil {
		return err
	}
	created, err := r.alerts.Create(ctx, *alert)
	if err != nil {
		return internalError("create alert", err)
	}
	*alert = created
	return nil
}

// UpdateOwned merges patch into the alert after the ownership check. The owner
// of an alert never changes, so the check stays valid for the update.
func (r *StoreAlertRepository) UpdateOwned(ctx context.Context, id, userID int64, patch models.AlertPatch) (*models.Alert, error) {
	if _, err := getOwned(ctx, r.alerts, "alert", id, userID); err != nil {
		return nil, err
	}
	a, err := r.alerts.Update(ctx, id, patch.Apply)
	if err != nil {
		return nil, lookupError("alert", id, err)
	}
	return &a, nil
}

func (r *StoreAlertRepository) DeleteOwned(ctx context.Context, id, userID int64) error {
	if _, err := getOwned(ctx, r.alerts, "alert", id, userID); err != nil {
		return err
	}
	removed, err := r.alerts.Delete(ctx, id)
	if err != nil {
		return internalError("delete alert", err)
	}
	if !removed {
		return apperror.NewNotFoundError("alert not found", store.ErrNotFound)
	}
	return nil
}
