package ports

import (
	"context"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login verifies the credentials and returns a signed identity token.
	// Unknown usernames and wrong passwords are indistinguishable to the
	// caller: both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
