package ports

import (
	"context"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

// ResourceRepository defines the generic storage operations the contract
// engine consumes. One implementation serves all kinds; the Schema carries
// the table layout.
type ResourceRepository interface {
	Insert(ctx context.Context, schema domain.Schema, rec domain.Record) error
	// Update writes the provided non-key fields for the record with the given
	// primary key. A zero-row update is not an error here; the engine's
	// reload step decides whether the record exists.
	Update(ctx context.Context, schema domain.Schema, key any, fields domain.Record) error
	Delete(ctx context.Context, schema domain.Schema, key any) error
	// Get returns *domain.NotFoundError when no record has the given key.
	Get(ctx context.Context, schema domain.Schema, key any) (domain.Record, error)
	List(ctx context.Context, schema domain.Schema) ([]domain.Record, error)
}
