package repositories

import (
	"context"
	"errors"
	"fmt"

	"rentdir/internal/apperror"
	"rentdir/internal/models"
	"rentdir/internal/store"
)

// StoreUserRepository is a UserRepository over the entity store.
type StoreUserRepository struct {
	users store.Table[models.User]
}

// NewStoreUserRepository creates a new instance of StoreUserRepository.
func NewStoreUserRepository(users store.Table[models.User]) *StoreUserRepository {
	return &StoreUserRepository{users: users}
}

// Create stores a new user. Username and email are unique across all users.
func (r *StoreUserRepository) Create(ctx context.Context, user *models.User) error {
	taken := func(u models.User) bool {
		return u.Username == user.Username || u.Email == user.Email
	}
	created, err := r.users.CreateUnless(ctx, *user, taken)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return apperror.NewDuplicateError("username or email already registered", err)
		}
		return internalError("create user", err)
	}
	*user = created
	return nil
}

func (r *StoreUserRepository) findOne(ctx context.Context, field, value string, match func(models.User) bool) (*models.User, error) {
	users, err := r.users.List(ctx, match)
	if err != nil {
		return nil, internalError("get user", err)
	}
	if len(users) == 0 {
		return nil, apperror.NewNotFoundError("user not found", fmt.Errorf("user with %s %s: %w", field, value, store.ErrNotFound))
	}
	return &users[0], nil
}

// GetByUsername retrieves a user by their username.
func (r *StoreUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username", username, func(u models.User) bool { return u.Username == username })
}

// GetByEmail retrieves a user by their email.
func (r *StoreUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email", email, func(u models.User) bool { return u.Email == email })
}

// GetByID retrieves a user by their ID.
func (r *StoreUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := r.users.Get(ctx, id)
	if err != nil {
		return nil, lookupError("user", id, err)
	}
	return &user, nil
}
