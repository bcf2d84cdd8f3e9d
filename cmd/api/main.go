// Command api serves the supermarket product API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/supermarket/docs/swagger"
	"github.com/ghuser/supermarket/pkg/app"
	"github.com/ghuser/supermarket/pkg/config"
	"github.com/ghuser/supermarket/pkg/httpx"
	"github.com/ghuser/supermarket/pkg/logger"
	"github.com/ghuser/supermarket/pkg/telemetry"
	productApi "github.com/ghuser/supermarket/services/product/application/api"
	productServices "github.com/ghuser/supermarket/services/product/application/services"
)

// @title					Supermarket API
// @version				1.0
// @description			Product catalogue and ordering with supplier restocking.
// @contact.name			API Support
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting is optional; log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	a, closeInfra, err := app.Connect(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect infrastructure", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer closeInfra()

	svcs, err := productServices.New(a)
	if err != nil {
		log.Error("failed to wire product services", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("product service ready",
		"store", cfg.StoreBackend,
		"supplier", cfg.SupplierBackend,
		"read_cache", a.Redis != nil,
		"max_order_quantity", cfg.MaxOrderQuantity)

	r := httpx.NewRouter(
		httpx.ServerConfig{
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			// Orders may wait on a supplier call; leave it room to answer.
			RequestTimeout: cfg.SupplierTimeout + 5*time.Second,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Otel:     otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(a.HealthChecks()))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	registerDocs(r)
	registerRoutes(r, svcs, a.IsProduction())

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerDocs serves the generated OpenAPI document and Swagger UI.
func registerDocs(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// registerRoutes mounts every bounded context's routes.
func registerRoutes(r chi.Router, svcs *productServices.Services, isProduction bool) {
	productApi.ProductRoutes(r, svcs, isProduction)
}
