package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/supermarket/pkg/cache"
	"github.com/ghuser/supermarket/pkg/logger"
	appsvcs "github.com/ghuser/supermarket/services/product/application/services"
	"github.com/ghuser/supermarket/services/product/domain/events"
	"github.com/ghuser/supermarket/services/product/infrastructure/persistence/memory"
	"github.com/ghuser/supermarket/services/product/infrastructure/supplier/stubsupplier"
)

// mapCache is a ProductCache stand-in shared by the service and the projector.
type mapCache struct {
	items   map[int]*cache.CachedProduct
	deleted []int
	err     error
}

func newMapCache() *mapCache {
	return &mapCache{items: map[int]*cache.CachedProduct{}}
}

func (c *mapCache) Get(_ context.Context, id int) (*cache.CachedProduct, error) {
	p, ok := c.items[id]
	if !ok {
		return nil, redis.Nil
	}
	cp := *p
	return &cp, nil
}

func (c *mapCache) Set(_ context.Context, p *cache.CachedProduct) error {
	cp := *p
	c.items[p.ID] = &cp
	return nil
}

func (c *mapCache) Delete(_ context.Context, id int) error {
	if c.err != nil {
		return c.err
	}
	c.deleted = append(c.deleted, id)
	delete(c.items, id)
	return nil
}

func newMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), body)
}

func quietLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, "error")
}

func TestEvents_EvictCache(t *testing.T) {
	email := "jaffa@gmail.com"
	tests := []struct {
		topic string
		evt   any
	}{
		{events.TopicProductCreated, events.NewProductCreated(7, "food", "Oranges", "Jaffa", &email, 1000)},
		{events.TopicStockRestocked, events.NewStockRestocked(7, 100, 1100)},
		{events.TopicOrderFulfilled, events.NewOrderFulfilled(7, 1100, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			mc := newMapCache()
			require.NoError(t, mc.Set(context.Background(), &cache.CachedProduct{ID: 7, Quantity: 1}))
			h, err := NewCacheProjector(mc, quietLogger()).Handler(tt.topic)
			require.NoError(t, err)

			require.NoError(t, h(context.Background(), newMessage(t, tt.evt)))
			assert.Equal(t, []int{7}, mc.deleted)
			assert.NotContains(t, mc.items, 7)
		})
	}
}

func TestEvents_EvictFailureIsReturned(t *testing.T) {
	for _, topic := range events.Topics {
		t.Run(topic, func(t *testing.T) {
			mc := newMapCache()
			mc.err = errors.New("redis down")
			h, err := NewCacheProjector(mc, quietLogger()).Handler(topic)
			require.NoError(t, err)

			assert.Error(t, h(context.Background(), newMessage(t, events.NewOrderFulfilled(7, 1, 0))))
		})
	}
}

func TestEvents_OutOfOrderDeliveryServesCommittedQuantity(t *testing.T) {
	ctx := context.Background()
	mc := newMapCache()
	svc, err := appsvcs.NewProductService(memory.NewProductRepository(), stubsupplier.New(0),
		appsvcs.Policy{MaxOrderQuantity: 10000}, appsvcs.WithReadCache(mc))
	require.NoError(t, err)

	name, manufacturer := "Oranges", "Jaffa"
	created := svc.CreateProduct(ctx, appsvcs.ProductDefinition{
		ProductID: 1, Category: "food", Name: &name, Manufacturer: &manufacturer, Quantity: 1000,
	})
	require.Equal(t, appsvcs.OutcomeOk, created.Outcome)
	require.Equal(t, appsvcs.OutcomeOk, svc.Order(ctx, 1, 500).Outcome)

	projector := NewCacheProjector(mc, quietLogger())
	deliveries := []struct {
		topic string
		evt   any
	}{
		{events.TopicOrderFulfilled, events.NewOrderFulfilled(1, 500, 500)},
		{events.TopicProductCreated, events.NewProductCreated(1, "food", name, manufacturer, nil, 1000)},
	}
	for _, d := range deliveries {
		h, err := projector.Handler(d.topic)
		require.NoError(t, err)
		require.NoError(t, h(ctx, newMessage(t, d.evt)))
	}

	got := svc.GetProduct(ctx, 1)
	require.Equal(t, appsvcs.OutcomeOk, got.Outcome)
	assert.Equal(t, uint(500), got.Payload.(appsvcs.ProductDefinition).Quantity)
}

func TestHandler_MalformedPayload(t *testing.T) {
	for _, topic := range events.Topics {
		t.Run(topic, func(t *testing.T) {
			h, err := NewCacheProjector(newMapCache(), quietLogger()).Handler(topic)
			require.NoError(t, err)
			msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
			assert.Error(t, h(context.Background(), msg))
		})
	}
}

func TestHandler_UnknownTopic(t *testing.T) {
	_, err := NewCacheProjector(newMapCache(), quietLogger()).Handler("product.deleted")
	assert.Error(t, err)
}
