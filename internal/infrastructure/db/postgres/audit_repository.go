package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

// AuditRepository appends immutable mutation records to the audit trail.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries (actor, role, action, kind, record_key, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.Actor, string(entry.Role), entry.Action, string(entry.Kind), entry.RecordKey, entry.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
