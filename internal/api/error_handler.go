package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders handler and middleware HTTP errors with their own message.
//   - Logs the internal cause of server errors without leaking it.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		// Only the routed methods exist; any other method on a known path
		// is reported like an unknown route.
		if he.Code == http.StatusMethodNotAllowed {
			c.Response().Header().Del(echo.HeaderAllow)
			return http.StatusNotFound, http.StatusText(http.StatusNotFound)
		}
		if he.Code >= http.StatusInternalServerError {
			logServerError(log, c, he.Internal, he.Code)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	logServerError(log, c, err, http.StatusInternalServerError)
	return http.StatusInternalServerError, "Internal server error."
}

func logServerError(log zerolog.Logger, c echo.Context, cause error, code int) {
	log.Error().
		Err(cause).
		Int("status", code).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")
}
