package ports

import "github.com/privatebanking/banking-system/internal/core/domain"

// Identity is the decoded assertion carried by a valid token.
type Identity struct {
	Subject string
	Role    domain.Role
}

// TokenService issues and validates stateless identity tokens. Tokens are
// signed with a process-wide secret and expire on their own; there is no
// refresh and no revocation.
type TokenService interface {
	Issue(username string, role domain.Role) (string, error)
	// Validate fails with domain.ErrInvalidToken for a bad signature, a
	// malformed payload, and an expired token alike. The cause is never
	// surfaced, so callers cannot probe which check failed.
	Validate(token string) (*Identity, error)
}
