package ports

import (
	"context"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

// ResourceService is the validate, execute, reload pipeline shared by all
// mutating endpoints. The actor is the authenticated subject performing the
// mutation; it feeds the audit trail and nothing else.
type ResourceService interface {
	Create(ctx context.Context, schema domain.Schema, payload domain.Record, actor string) (domain.Record, error)
	Update(ctx context.Context, schema domain.Schema, key string, payload domain.Record, actor string) (domain.Record, error)
	Delete(ctx context.Context, schema domain.Schema, key string, actor string) error
	List(ctx context.Context, schema domain.Schema) ([]domain.Record, error)
}
