package domain

import "time"

// AuditEntry records one successful admin mutation for the audit trail.
type AuditEntry struct {
	ID         int64
	Actor      string
	Role       Role
	Action     string // "create", "update", "delete"
	Kind       Kind
	RecordKey  string
	OccurredAt time.Time
}
