package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bucketchat/api/docs"
	"github.com/bucketchat/api/internal/api/handler"
	"github.com/bucketchat/api/internal/api/middleware"
	"github.com/bucketchat/api/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the outside world.
type Dependencies struct {
	Auth     ports.AuthService
	Tokens   ports.TokenVerifier
	Messages ports.MessageService

	// Ready lists the dependencies probed by /health/ready, keyed by name.
	Ready map[string]handler.Pinger

	Logger zerolog.Logger

	// Registry receives the HTTP request metrics instead of the global
	// registry. /metrics serves both.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = prometheus.Gatherers{deps.Registry, prometheus.DefaultGatherer}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bucketchat",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	messageHandler := handler.NewMessageHandler(deps.Messages)
	readiness := handler.NewReadinessHandler(deps.Ready, deps.Logger)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.Liveness)
	e.GET("/health/ready", readiness.Readiness)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// --- Feed routes (bearer token) ---
	// Middleware is attached per route: a group would also wrap its
	// not-found routes and answer unknown /message paths with 401.
	authenticated := []echo.MiddlewareFunc{middleware.Auth(deps.Tokens), middleware.RequireIdentity()}
	e.POST("/message", messageHandler.Post, authenticated...)
	e.GET("/message", messageHandler.List, authenticated...)

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured access log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
