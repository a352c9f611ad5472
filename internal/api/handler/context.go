package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitpass/gym-system/internal/core/ports"
)

// ctxCaller extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both member_id and
// role must be present (presence proves the middleware ran and the token
// carried a usable identity).
func ctxCaller(c echo.Context) (ports.Caller, error) {
	memberID, _ := c.Get("member_id").(string)
	role, _ := c.Get("role").(string)
	if memberID == "" || role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Caller{MemberID: memberID, Role: role}, nil
}
