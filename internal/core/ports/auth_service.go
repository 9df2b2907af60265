package ports

import (
	"context"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthService implements registration, login and identity resolution.
// Register and Login return a signed session token; WhoAmI materializes the
// current user for a verified token and never exposes the password hash.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	WhoAmI(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
