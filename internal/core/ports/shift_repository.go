package ports

import (
	"context"
	"time"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
)

// ShiftFilter narrows List results. Zero values mean "no filter".
type ShiftFilter struct {
	UserID   string
	Position string
}

type ShiftRepository interface {
	Create(ctx context.Context, shift *domain.Shift) (*domain.Shift, error)
	FindByID(ctx context.Context, id string) (*domain.Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]*domain.Shift, error)
	Update(ctx context.Context, id string, patch ShiftPatch) (*domain.Shift, error)
	Delete(ctx context.Context, id string) error
}

// ShiftPatch carries partial updates; nil fields are left untouched.
type ShiftPatch struct {
	UserID    *string
	StartTime *time.Time
	EndTime   *time.Time
	Position  *string
	Notes     *string
}
