package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/brightpixel/rolodex/docs"
	"github.com/brightpixel/rolodex/internal/api/handler"
	"github.com/brightpixel/rolodex/internal/api/middleware"
	"github.com/brightpixel/rolodex/internal/core/ports"
)

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Directory ports.DirectoryService
	// Snapshot is nil when persistence is disabled.
	Snapshot     ports.SnapshotStore
	SnapshotName string
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("rolodex"))
	e.Use(echomiddleware.BodyLimit("64K"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Directory)
	tokenMiddleware := middleware.Token(deps.Auth)

	// --- Auth routes ---
	e.GET("/token", authHandler.Token)

	// --- Directory routes ---
	users := e.Group("/users", tokenMiddleware)
	users.GET("", userHandler.List)
	users.GET("/:uid", userHandler.Get)
	users.PUT("/:uid", userHandler.Update)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	var backend handler.Pinger
	if deps.Snapshot != nil {
		backend = deps.Snapshot
	}
	readinessHandler := handler.NewReadinessHandler(deps.SnapshotName, backend)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the snapshot backend up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
