package repositories

import (
	"context"
	"errors"
	"fmt"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/store"
)

// lookupError translates a store lookup failure into the application taxonomy.
func lookupError(what string, id int64, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NewNotFoundError(fmt.Sprintf("%s not found", what), fmt.Errorf("%s %d: %w", what, id, err))
	}
	return apperror.NewInternalError(fmt.Sprintf("failed to get %s", what), fmt.Errorf("%s %d: %w", what, id, err))
}

// requireUser reports NotFound when userID names no account. A nil table skips
// the check.
func requireUser(ctx context.Context, users store.Table[models.User], userID int64) error {
	if users == nil {
		return nil
	}
	if _, err := users.Get(ctx, userID); err != nil {
		return lookupError("user", userID, err)
	}
	return nil
}

func internalError(action string, err error) error {
	return apperror.NewInternalError("failed to "+action, err)
}

// ownedBy is implemented by records that belong to a single user.
type ownedBy[T any] interface {
	*T
	OwnerID() int64
}

// getOwned fetches a record and verifies it belongs to userID. A record owned
// by someone else is reported exactly like a missing one.
func getOwned[T any, PT ownedBy[T]](ctx context.Context, table store.Table[T], what string, id, userID int64) (T, error) {
	rec, err := table.Get(ctx, id)
	if err != nil {
		return rec, lookupError(what, id, err)
	}
	if PT(&rec).OwnerID() != userID {
		var zero T
		return zero, apperror.NewNotFoundError(fmt.Sprintf("%s not found", what), nil)
	}
	return rec, nil
}
