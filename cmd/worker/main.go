// Command worker consumes product events and hosts the Temporal restock worker.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/supermarket/pkg/app"
	"github.com/ghuser/supermarket/pkg/cache"
	"github.com/ghuser/supermarket/pkg/config"
	"github.com/ghuser/supermarket/pkg/logger"
	"github.com/ghuser/supermarket/pkg/telemetry"
	"github.com/ghuser/supermarket/services/product/application/subscribers"
	productEvents "github.com/ghuser/supermarket/services/product/domain/events"
	"github.com/ghuser/supermarket/services/product/infrastructure/supplier/httpsupplier"
	"github.com/ghuser/supermarket/services/product/infrastructure/supplier/temporalsupplier"
)

var errNothingToRun = errors.New("worker has nothing to run: set STORE_BACKEND=postgres with REDIS_URL, or SUPPLIER_BACKEND=temporal")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	a, closeInfra, err := app.Connect(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect infrastructure", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	// EventBus.Close waits up to 30s for in-flight handlers.
	defer closeInfra()

	subscribed, err := registerSubscribers(ctx, a)
	if err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	stopRestock, err := startRestockWorker(a)
	if err != nil {
		log.Error("failed to start temporal worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if !subscribed && stopRestock == nil {
		log.Error("worker not started", "error", errNothingToRun)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	if stopRestock != nil {
		stopRestock()
	}
	cancel()
	log.Info("worker stopped")
}

// registerSubscribers projects product events into the Redis read cache.
// It reports false when the event bus or Redis is not configured.
func registerSubscribers(ctx context.Context, a *app.Application) (bool, error) {
	if a.EventBus == nil || a.Redis == nil {
		a.Logger.Info("cache projection disabled", "event_bus", a.EventBus != nil, "redis", a.Redis != nil)
		return false, nil
	}

	projector := subscribers.NewCacheProjector(cache.NewProductCache(a.Redis), a.Logger.With("component", "cache_projector"))
	for _, topic := range productEvents.Topics {
		handler, err := projector.Handler(topic)
		if err != nil {
			return false, err
		}
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return false, err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", productEvents.Topics)
	return true, nil
}

// startRestockWorker hosts RestockWorkflow and its activity when the API
// routes supplier calls through Temporal. The activity talks to the
// wholesaler over HTTP. The returned stop func is nil when nothing started.
func startRestockWorker(a *app.Application) (func(), error) {
	if a.TemporalClient == nil {
		return nil, nil
	}

	w := a.TemporalClient.NewWorker()
	temporalsupplier.Register(w, &temporalsupplier.Activities{
		Supplier: httpsupplier.New(httpsupplier.OptionsFromConfig(a.Config), a.Logger.With("component", "supplier")),
	})
	if err := w.Start(); err != nil {
		return nil, err
	}

	a.Logger.Info("restock worker started", "task_queue", a.TemporalClient.TaskQueue)
	return w.Stop, nil
}
