package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const healthTimeout = 2 * time.Second

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database.Database, cache.RedisClient, events.EventBus).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks maps a dependency name to its probe. Only dependencies the
// process actually runs with are registered, so a memory-backed dev server
// reports healthy with an empty set.
type HealthChecks map[string]HealthChecker

// HealthHandler probes every registered dependency concurrently and reports
// "degraded" with 503 if any of them fail. The body is a flat object:
// {"status": "ok", "database": "ok", "redis": "unreachable"}.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := map[string]string{"status": "ok"}
		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for name, check := range checks {
			wg.Add(1)
			go func() {
				defer wg.Done()
				state := "ok"
				if err := check.Ping(ctx); err != nil {
					state = "unreachable"
				}
				mu.Lock()
				defer mu.Unlock()
				resp[name] = state
				if state != "ok" {
					resp["status"] = "degraded"
				}
			}()
		}
		wg.Wait()

		status := http.StatusOK
		if resp["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
