package repository

import (
	"context"
	"errors"

	"github.com/satriadi/user-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the given id or email.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a write trips the unique index on email.
	ErrDuplicateEmail = errors.New("email already taken")
)

// UserRepository defines the interface for user-related database operations.
// Insert fills in the store-assigned ID and CreatedAt on the passed entity.
// Update and Delete report ErrNotFound when zero rows were affected.
type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
}
