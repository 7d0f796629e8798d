package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/satriadi/user-service/internal/domain/entity"
	repo "github.com/satriadi/user-service/internal/domain/repository"
	"github.com/satriadi/user-service/pkg/events"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// ValidationError reports the first violated input constraint. Constraints are
// checked in a fixed order (name, email, age) so the message is reproducible.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

// StorageError wraps an unexpected repository failure. Classified store
// outcomes (not found, duplicate email) are never wrapped in it.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage failure: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// Notifier publishes user lifecycle events to the notification channel.
// Delivery is best-effort; the service absorbs publish failures.
type Notifier interface {
	Notify(ctx context.Context, ev events.UserEvent) error
}

// Service enforces the business invariants around the User entity: required
// fields, email uniqueness, and existence of the referenced row. It holds no
// state between calls and is safe for concurrent use.
type Service struct {
	Repo     repo.UserRepository
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewService(r repo.UserRepository, n Notifier, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Notifier: n, Logger: logger}
}

// Create validates the candidate, rejects duplicate emails, and inserts the
// row. The store assigns ID and CreatedAt. On success a CREATE event is
// published best-effort.
func (s *Service) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByEmail(ctx, u.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, &StorageError{Err: err}
	}

	if err := s.Repo.Insert(ctx, u); err != nil {
		// The pre-check races with concurrent creates; the unique index is
		// the actual enforcement backstop.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, &StorageError{Err: err}
	}

	s.notify(ctx, events.OpCreate, u.Email)
	return u, nil
}

// GetByID returns the user with the given id.
func (s *Service) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, &StorageError{Err: err}
	}
	return u, nil
}

// List returns all users; an empty store yields an empty slice, not an error.
func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return users, nil
}

// Update persists name, email, and age against an existing id. ID and
// CreatedAt are never altered. A changed email is re-checked for collision
// with another row before the write.
func (s *Service) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	if err := validateUser(u); err != nil {
		return nil, err
	}
	if err := validateID(u.ID); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByID(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, &StorageError{Err: err}
	}

	if existing.Email != u.Email {
		if other, err := s.Repo.GetByEmail(ctx, u.Email); err == nil && other.ID != u.ID {
			return nil, ErrEmailAlreadyExists
		} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, &StorageError{Err: err}
		}
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			// Row deleted between the read and the write.
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailAlreadyExists
		default:
			return nil, &StorageError{Err: err}
		}
	}

	u.CreatedAt = existing.CreatedAt
	return u, nil
}

// Delete removes the user with the given id. The row is read first to capture
// its email for the DELETE event; the event is published best-effort after
// the delete succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return &StorageError{Err: err}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return &StorageError{Err: err}
	}

	s.notify(ctx, events.OpDelete, u.Email)
	return nil
}

// notify publishes a lifecycle event. Failures are logged and swallowed:
// store consistency wins over notification consistency.
func (s *Service) notify(ctx context.Context, op events.Operation, email string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, events.UserEvent{Operation: op, Email: email}); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"operation": op,
			"email":     email,
		}).Warn("user event publish failed")
	}
}

func validateUser(u *entity.User) error {
	if u == nil {
		return &ValidationError{Reason: "user must not be nil"}
	}
	if strings.TrimSpace(u.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(u.Email) == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if u.Age != nil && *u.Age < 0 {
		return &ValidationError{Field: "age", Reason: "must not be negative"}
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return nil
}
