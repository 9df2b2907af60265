package service

import (
	"context"
	"fmt"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
	"github.com/shiftline/staff-scheduler/internal/core/ports"
)

// AuditTrailService persists activity entries drained from the dispatcher.
type AuditTrailService struct {
	repo ports.AuditRepository
}

func NewAuditTrailService(repo ports.AuditRepository) *AuditTrailService {
	return &AuditTrailService{repo: repo}
}

func (s *AuditTrailService) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.ActorID == "" || entry.Action == "" {
		return fmt.Errorf("audit entry missing actor or action")
	}
	return s.repo.Insert(ctx, entry)
}
