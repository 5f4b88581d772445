package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireIdentity rejects authenticated requests whose token claim carries
// no username. It must run after Auth.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get(ContextUsername).(string)
			if username == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Token missing user identity.")
			}
			return next(c)
		}
	}
}
