// Package app wires configuration, storage, services and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bucketchat/api/internal/api"
	"github.com/bucketchat/api/internal/api/handler"
	"github.com/bucketchat/api/internal/core/service"
	"github.com/bucketchat/api/internal/infrastructure/db"
	"github.com/bucketchat/api/internal/infrastructure/profanity"
	"github.com/bucketchat/api/internal/infrastructure/repository"
	"github.com/bucketchat/api/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger zerolog.Logger
	stores *db.Stores
	echo   *echo.Echo
}

// NewApp opens the configured store backend and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	stores, err := db.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	filter := profanity.NewFilter()
	tokens := service.NewTokenService(cfg.TokenSecret, service.SessionTTL)

	authService := service.NewAuthService(
		repository.NewUserRepository(stores.Users),
		service.NewCredentialService(cfg.PasswordHashSecret),
		tokens,
		filter,
		log.With().Str("component", "auth").Logger(),
	)
	messageService := service.NewMessageService(
		repository.NewMessageRepository(stores.Messages, log.With().Str("component", "messages").Logger()),
		filter,
		log.With().Str("component", "messages").Logger(),
	)

	e := api.NewRouter(api.Dependencies{
		Auth:     authService,
		Tokens:   tokens,
		Messages: messageService,
		Ready: map[string]handler.Pinger{
			cfg.Store.UsersBucket:    stores.Users,
			cfg.Store.MessagesBucket: stores.Messages,
		},
		Logger: log,
	})

	return &App{config: cfg, logger: log, stores: stores, echo: e}, nil
}

// Handler exposes the router, mainly for tests.
func (app *App) Handler() http.Handler {
	return app.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// closes the store backend.
func (app *App) Run(ctx context.Context) error {
	addr := ":" + app.config.Port
	errCh := make(chan error, 1)

	go func() {
		app.logger.Info().Str("addr", addr).Str("driver", app.config.Store.Driver).Msg("starting server")
		if err := app.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info().Msg("shutting down")
	case err, ok := <-errCh:
		if ok {
			runErr = fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.echo.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown: %w", err))
	}
	if err := app.stores.Close(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("close store: %w", err))
	}
	return runErr
}
