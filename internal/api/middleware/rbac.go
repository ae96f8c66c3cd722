package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RoleGate enforces role-based access on a route. The same allow-lists drive
// the sidebar, so a gated route is normally unreachable through the UI; a
// direct URL from a non-member bounces back to the dashboard rather than
// rendering a dead end. JSON endpoints get a plain 403.
func RoleGate(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if sess != nil {
				for _, r := range sess.Roles {
					if _, ok := allowed[r]; ok {
						return next(c)
					}
				}
			}
			if wantsJSON(c) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return c.Redirect(http.StatusFound, "/dashboard")
		}
	}
}
