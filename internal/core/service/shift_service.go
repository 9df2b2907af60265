package service

import (
	"context"
	"time"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
	"github.com/shiftline/staff-scheduler/internal/core/ports"
)

// ShiftService implements shift CRUD on top of the shift repository.
// Creation is optionally idempotent: a replayed Idempotency-Key returns the
// shift produced by the first attempt instead of inserting a duplicate.
type ShiftService struct {
	shifts ports.ShiftRepository
	users  ports.UserRepository
	idem   ports.IdempotencyStore
	audit  ports.AuditSink
}

func NewShiftService(shifts ports.ShiftRepository, users ports.UserRepository, idem ports.IdempotencyStore, audit ports.AuditSink) *ShiftService {
	return &ShiftService{shifts: shifts, users: users, idem: idem, audit: audit}
}

func (s *ShiftService) Create(ctx context.Context, in ports.CreateShiftInput) (*domain.Shift, error) {
	if in.IdempotencyKey != "" && s.idem != nil {
		if id, found, err := s.idem.Lookup(ctx, in.IdempotencyKey); err == nil && found {
			if replayed, err := s.shifts.FindByID(ctx, id); err == nil {
				return replayed, nil
			}
			// The remembered shift was deleted since; the marker is stale
			// and the request is a fresh create.
		}
	}

	// The assignee must exist; a dangling reference renders the calendar
	// entry unusable.
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	shift := &domain.Shift{
		UserID:    in.UserID,
		StartTime: in.StartTime.UTC(),
		EndTime:   in.EndTime.UTC(),
		Position:  in.Position,
		Notes:     in.Notes,
	}
	if !shift.ValidRange() {
		return nil, domain.ErrInvalidShiftRange
	}

	now := time.Now().UTC()
	shift.CreatedAt = now
	shift.UpdatedAt = now

	created, err := s.shifts.Create(ctx, shift)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		// Best effort: losing the marker only risks a duplicate on replay.
		_ = s.idem.Remember(ctx, in.IdempotencyKey, created.ID)
	}

	s.record(in.ActorID, domain.AuditShiftCreated, created.ID)
	return created, nil
}

func (s *ShiftService) List(ctx context.Context, filter ports.ShiftFilter) ([]*domain.Shift, error) {
	return s.shifts.List(ctx, filter)
}

func (s *ShiftService) Update(ctx context.Context, id string, in ports.UpdateShiftInput) (*domain.Shift, error) {
	if in.Patch.UserID != nil {
		if _, err := s.users.FindByID(ctx, *in.Patch.UserID); err != nil {
			return nil, err
		}
	}

	current, err := s.shifts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start, end := current.StartTime, current.EndTime
	if in.Patch.StartTime != nil {
		start = *in.Patch.StartTime
	}
	if in.Patch.EndTime != nil {
		end = *in.Patch.EndTime
	}
	if !end.After(start) {
		return nil, domain.ErrInvalidShiftRange
	}

	updated, err := s.shifts.Update(ctx, id, in.Patch)
	if err != nil {
		return nil, err
	}

	s.record(in.ActorID, domain.AuditShiftUpdated, id)
	return updated, nil
}

func (s *ShiftService) Delete(ctx context.Context, id, actorID string) error {
	if err := s.shifts.Delete(ctx, id); err != nil {
		return err
	}
	s.record(actorID, domain.AuditShiftDeleted, id)
	return nil
}

func (s *ShiftService) record(actorID, action, subject string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEntry{
		ActorID: actorID,
		Action:  action,
		Subject: subject,
		At:      time.Now().UTC(),
	})
}
