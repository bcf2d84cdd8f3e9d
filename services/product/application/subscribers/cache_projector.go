// Package subscribers consumes product domain events in the worker process.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/supermarket/pkg/logger"
	"github.com/ghuser/supermarket/services/product/domain/events"
)

// CacheEvicter is the part of the product read cache the projector touches.
type CacheEvicter interface {
	Delete(ctx context.Context, id int) error
}

// CacheProjector keeps the Redis read model in step with committed product
// events. Every event evicts the entry and the next read reloads the
// committed row through the service. Topics are consumed concurrently, so no
// handler may write a snapshot taken from its event.
type CacheProjector struct {
	cache CacheEvicter
	log   logger.Logger
}

func NewCacheProjector(c CacheEvicter, log logger.Logger) *CacheProjector {
	return &CacheProjector{cache: c, log: log}
}

// Handler returns the message handler for topic. Handlers are idempotent so
// the bus may redeliver.
func (p *CacheProjector) Handler(topic string) (func(context.Context, *message.Message) error, error) {
	switch topic {
	case events.TopicProductCreated:
		return p.evict(topic, func() productEvent { return &events.ProductCreatedEvent{} }), nil
	case events.TopicStockRestocked:
		return p.evict(topic, func() productEvent { return &events.StockRestockedEvent{} }), nil
	case events.TopicOrderFulfilled:
		return p.evict(topic, func() productEvent { return &events.OrderFulfilledEvent{} }), nil
	default:
		return nil, fmt.Errorf("no cache projection for topic %q", topic)
	}
}

type productEvent interface {
	ProductID() int
}

func (p *CacheProjector) evict(topic string, newEvent func() productEvent) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		evt := newEvent()
		if err := json.Unmarshal(msg.Payload, evt); err != nil {
			return fmt.Errorf("decode %s: %w", topic, err)
		}
		// A stale entry would serve a wrong quantity, so eviction failures
		// go back to the bus for retry.
		if err := p.cache.Delete(ctx, evt.ProductID()); err != nil {
			return err
		}
		p.log.DebugContext(ctx, "cache evicted", "topic", topic, "product_id", evt.ProductID())
		return nil
	}
}
