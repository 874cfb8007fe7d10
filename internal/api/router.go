package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/kivusafe/portal/docs"
	"github.com/kivusafe/portal/internal/api/handler"
	"github.com/kivusafe/portal/internal/api/middleware"
	"github.com/kivusafe/portal/internal/core/ports"
)

// Deps is everything the HTTP surface needs, built by the caller.
type Deps struct {
	Session      ports.SessionService
	Reports      ports.ReportService
	Registration ports.RegistrationService
	// Health names the dependencies checked by /health/ready.
	Health    map[string]handler.Pinger
	LoginPath string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("kivusafe"))

	loginPath := d.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	gate := middleware.LoadingGate(d.Session)
	guard := middleware.Guard(d.Session, loginPath)

	sessionHandler := handler.NewSessionHandler(d.Session)
	registrationHandler := handler.NewRegistrationHandler(d.Registration)
	reportHandler := handler.NewReportHandler(d.Reports)
	healthHandler := handler.NewHealthHandler(d.Health)

	// --- Probes, metrics and docs (never gated) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public views, behind the loading gate ---
	e.POST("/login", sessionHandler.Login, gate)
	e.POST("/logout", sessionHandler.Logout, gate)
	e.GET("/session", sessionHandler.Current, gate)
	e.POST("/register", registrationHandler.Register, gate)
	e.POST("/report", reportHandler.Submit, gate)

	// --- Guarded views; the gate runs first so a restoring session is never
	// mistaken for a logged-out one ---
	e.GET("/dashboard", reportHandler.Dashboard, gate, guard)
	e.GET("/dashboard/export", reportHandler.Export, gate, guard)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
