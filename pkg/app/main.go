package app

import (
	"github.com/ghuser/supermarket/pkg/cache"
	"github.com/ghuser/supermarket/pkg/config"
	"github.com/ghuser/supermarket/pkg/database"
	"github.com/ghuser/supermarket/pkg/events"
	"github.com/ghuser/supermarket/pkg/logger"
	"github.com/ghuser/supermarket/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each service's route registration during server start-up.
//
// Optional dependencies are nil when their backend is not configured:
// Db and EventBus with STORE_BACKEND=memory, Redis with an empty REDIS_URL,
// TemporalClient unless SUPPLIER_BACKEND=temporal.
//
// app.Logger is backed by a trace-aware handler; use the context methods so
// trace_id, span_id and request_id are attached:
//
//	app.Logger.InfoContext(ctx, "order placed", "product_id", id)
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
}
