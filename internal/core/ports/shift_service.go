package ports

import (
	"context"
	"time"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
)

type CreateShiftInput struct {
	UserID    string
	StartTime time.Time
	EndTime   time.Time
	Position  string
	Notes     string

	// IdempotencyKey, when non-empty, makes creation replay-safe: a second
	// call with the same key returns the shift created by the first.
	IdempotencyKey string
	ActorID        string
}

type UpdateShiftInput struct {
	Patch   ShiftPatch
	ActorID string
}

type ShiftService interface {
	Create(ctx context.Context, in CreateShiftInput) (*domain.Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]*domain.Shift, error)
	Update(ctx context.Context, id string, in UpdateShiftInput) (*domain.Shift, error)
	Delete(ctx context.Context, id, actorID string) error
}
