package ports

import (
	"context"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
type UserRepository interface {
	// Create inserts a new user. Two concurrent registrations of the same
	// username must not both succeed; implementations rely on a storage-level
	// uniqueness constraint and report the loser as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
