package ports

import (
	"context"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
)

// UserRepository is the persistence boundary for the credential store.
// Create must rely on the store's unique-index on email, never on a
// check-then-insert sequence, so concurrent duplicate registrations are
// rejected by the store itself.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
