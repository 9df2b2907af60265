package ports

import (
	"context"

	"github.com/shiftline/staff-scheduler/internal/core/domain"
)

// AuditRepository persists activity records.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// AuditService consumes entries drained from the dispatcher workers.
type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

// AuditSink is the fire-and-forget side used by request-path services.
// Implementations must not block beyond a bounded channel send.
type AuditSink interface {
	Enqueue(entry domain.AuditEntry)
}
