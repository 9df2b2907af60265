package domain

import "time"

// Audit action names recorded by the async pipeline.
const (
	AuditLogin        = "auth.login"
	AuditRegister     = "auth.register"
	AuditShiftCreated = "shift.created"
	AuditShiftUpdated = "shift.updated"
	AuditShiftDeleted = "shift.deleted"
)

// AuditEntry is a best-effort activity record. Entries are written by a
// background worker pool and must never fail a user request.
type AuditEntry struct {
	ActorID string    `json:"actor_id" bson:"actor_id"`
	Action  string    `json:"action" bson:"action"`
	Subject string    `json:"subject,omitempty" bson:"subject,omitempty"`
	At      time.Time `json:"at" bson:"at"`
}
