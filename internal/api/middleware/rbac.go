package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/privatebanking/banking-system/internal/core/domain"
)

// RequireRole enforces role-based access control. Membership in the allowed
// set is the only check: a role the policy table does not know is denied,
// never treated as a wildcard.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
