// Package server assembles the HTTP surface: middleware chain, health
// endpoints, and the versioned API routes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/leguplabs/pythia/config"
	"github.com/leguplabs/pythia/pkg/middleware"
	"github.com/leguplabs/pythia/pkg/routes/health"
	"github.com/leguplabs/pythia/pkg/routes/match"
	"github.com/leguplabs/pythia/pkg/routes/resolve"
	"github.com/leguplabs/pythia/pkg/routes/share"
	"github.com/leguplabs/pythia/pkg/tracing"
	"github.com/leguplabs/pythia/pkg/tracing/exporters"
)

// New builds the echo instance with the full middleware chain and all routes
// registered.
func New(cfg *config.Config, logger ectologger.Logger, checker *health.Checker) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.Error(logger)

	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))
	e.Use(echomiddleware.Recover())

	if checker != nil {
		checker.RegisterRoutes(e)
	}

	api := e.Group("/api/v1")
	resolve.Register(api.Group("/resolve"))
	match.Register(api.Group("/matches"))
	share.Register(api.Group("/shares"))

	return e
}

// StartTracing configures the OTLP trace pipeline when tracing is enabled.
// Returns the shutdown hook; when tracing is disabled the hook is a no-op.
func StartTracing(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.TracingEnabled {
		return func(context.Context) error { return nil }, nil
	}

	exporterCfg := exporters.DefaultOTLPConfig()
	exporterCfg.Endpoint = cfg.TracingOTLPEndpoint

	exporter, err := exporters.NewOTLPExporter(ctx, exporterCfg)
	if err != nil {
		return nil, err
	}

	return tracing.Init(cfg.AppName, exporter), nil
}

// Start runs the server with the configured timeouts. Blocks until the
// server exits.
func Start(e *echo.Echo, cfg *config.Config) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		ReadTimeout:    time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:   time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:    time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	return e.StartServer(srv)
}
