package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bucketchat/api/internal/api/middleware"
)

// ctxUsername extracts the username injected by the Auth middleware and
// fails fast before any service call:
//   - a missing value means the route was mounted without Auth: 401.
//   - an empty value means the token verified but names nobody: 403.
func ctxUsername(c echo.Context) (string, error) {
	raw := c.Get(middleware.ContextUsername)
	if raw == nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing token.")
	}

	username, _ := raw.(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusForbidden, "Token missing user identity.")
	}
	return username, nil
}
