package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghuser/supermarket/pkg/cache"
	"github.com/ghuser/supermarket/pkg/config"
	"github.com/ghuser/supermarket/pkg/database"
	"github.com/ghuser/supermarket/pkg/events"
	"github.com/ghuser/supermarket/pkg/httpx"
	"github.com/ghuser/supermarket/pkg/logger"
	"github.com/ghuser/supermarket/pkg/workflows"
)

// Connect opens the infrastructure cfg asks for and returns the Application
// plus a Close func that releases it in reverse order. On error everything
// opened so far is already closed.
func Connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*Application, func(), error) {
	a := &Application{Config: cfg, Logger: log}
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*Application, func(), error) {
		closeAll()
		return nil, nil, err
	}

	if cfg.UsesPostgres() {
		db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return fail(fmt.Errorf("connect database: %w", err))
		}
		a.Db = db
		closers = append(closers, func() { closeLogged(log, "database", db.Close) })
		log.Info("database pool connected")

		bus, err := events.NewEventBus(cfg, log)
		if err != nil {
			return fail(fmt.Errorf("setup event bus: %w", err))
		}
		a.EventBus = bus
		closers = append(closers, func() { closeLogged(log, "event bus", bus.Close) })
	}

	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fail(fmt.Errorf("connect redis: %w", err))
		}
		a.Redis = rc
		closers = append(closers, func() { closeLogged(log, "redis", rc.Close) })
		log.Info("redis connected")
	}

	if cfg.SupplierBackend == config.SupplierTemporal {
		tc, err := workflows.NewTemporalClient(ctx, cfg, log)
		if err != nil {
			return fail(fmt.Errorf("connect temporal: %w", err))
		}
		a.TemporalClient = tc
		closers = append(closers, tc.Close)
	}

	return a, closeAll, nil
}

// HealthChecks returns a probe for every connected dependency.
func (a *Application) HealthChecks() httpx.HealthChecks {
	checks := httpx.HealthChecks{}
	if a.Db != nil {
		checks["database"] = a.Db
	}
	if a.Redis != nil {
		checks["redis"] = a.Redis
	}
	if a.EventBus != nil {
		checks["event_bus"] = a.EventBus
	}
	return checks
}

// IsProduction reports whether the process runs with ENVIRONMENT=production.
func (a *Application) IsProduction() bool {
	return a.Config != nil && a.Config.Environment == config.EnvProduction
}

func closeLogged(log logger.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("close failed", "component", name, "error", err)
	}
}
