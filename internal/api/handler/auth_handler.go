package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bucketchat/api/internal/core/domain"
	"github.com/bucketchat/api/internal/core/ports"
	"github.com/bucketchat/api/internal/pkg/metrics"
)

const msgMissingCredentials = "Missing username or password."

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new user and returns a session token.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "New user credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	token, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.SignupsTotal.WithLabelValues("rejected").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, msgMissingCredentials)
		case errors.Is(err, domain.ErrOffensiveContent):
			metrics.SignupsTotal.WithLabelValues("rejected").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid username.")
		case errors.Is(err, domain.ErrUserExists):
			metrics.SignupsTotal.WithLabelValues("conflict").Inc()
			return echo.NewHTTPError(http.StatusConflict, "User already exists.")
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to create user.").SetInternal(err)
	}

	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, msgMissingCredentials)
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password.")
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to retrieve user.").SetInternal(err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func bindCredentials(c echo.Context) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, msgMissingCredentials)
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, msgMissingCredentials)
	}
	return &req, nil
}
