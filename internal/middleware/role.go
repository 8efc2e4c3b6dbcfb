package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/asset-management/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// user holds one of the given roles.  The JWT's "role" claim carries the
// role name; it is mapped back to a RoleID so the check runs against the
// enumerated values and a claim naming no seeded role never passes.
// Requests with a missing or disallowed role are rejected with 403
// Forbidden.  JWTAuth must run earlier in the chain.
func RequireRole(roles ...model.RoleID) echo.MiddlewareFunc {
	allowed := make(map[model.RoleID]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			name, ok := c.Get("role").(string)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			id, ok := model.RoleFromName(name)
			if !ok || !allowed[id] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
