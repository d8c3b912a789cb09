package ports

import (
	"context"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

// AuditRecorder accepts audit entries for asynchronous persistence. Record
// must not block the request path beyond queueing.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
