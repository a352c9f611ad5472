package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitpass/gym-system/internal/core/domain"
)

// RequireAction enforces route-level access control against the declarative
// permission table. Services re-check the same table for operation-specific
// rules (ownership, on-behalf); this gate fails fast before any body parsing.
func RequireAction(action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !domain.RoleAllows(role, action) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
