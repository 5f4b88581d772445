package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bucketchat/api/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextProfile  = "profile"
	ContextUsername = "username"
)

const msgInvalidToken = "Invalid or missing token."

// Auth validates the bearer token and injects the verified profile into
// the context. Missing, malformed, badly signed and expired tokens are 401.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}

			profile, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}

			c.Set(ContextProfile, profile)
			c.Set(ContextUsername, profile.Username)

			return next(c)
		}
	}
}
