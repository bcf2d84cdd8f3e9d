package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the product repository on commit.
const (
	TopicProductCreated = "product.created"
	TopicStockRestocked = "product.stock_restocked"
	TopicOrderFulfilled = "product.order_fulfilled"
)

// Topics lists every product topic, for subscribers that handle all of them.
var Topics = []string{TopicProductCreated, TopicStockRestocked, TopicOrderFulfilled}

// Event is a domain event recorded by the Product aggregate.
type Event interface {
	Topic() string
	ProductID() int
	Meta() Envelope
}

// Envelope carries the metadata shared by every product event.
type Envelope struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	OccurredAt time.Time `json:"occurred_at"`
}

// Meta returns the envelope; embedding promotes it onto every event.
func (e Envelope) Meta() Envelope { return e }

func newEnvelope() Envelope {
	return Envelope{EventID: uuid.New(), Version: 1, OccurredAt: time.Now().UTC()}
}

// ProductCreatedEvent carries the full definition of a newly added product.
type ProductCreatedEvent struct {
	Envelope
	ID            int     `json:"product_id"`
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	Manufacturer  string  `json:"manufacturer"`
	ImporterEmail *string `json:"importer_email,omitempty"`
	Quantity      uint    `json:"quantity"`
}

// NewProductCreated stamps a ProductCreatedEvent with a fresh envelope.
func NewProductCreated(id int, category, name, manufacturer string, importerEmail *string, quantity uint) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		Envelope:      newEnvelope(),
		ID:            id,
		Category:      category,
		Name:          name,
		Manufacturer:  manufacturer,
		ImporterEmail: importerEmail,
		Quantity:      quantity,
	}
}

func (e *ProductCreatedEvent) Topic() string  { return TopicProductCreated }
func (e *ProductCreatedEvent) ProductID() int { return e.ID }

// StockRestockedEvent records units delivered by the supplier.
type StockRestockedEvent struct {
	Envelope
	ID       int  `json:"product_id"`
	Units    uint `json:"units"`
	Quantity uint `json:"quantity"` // on-hand after the restock
}

func NewStockRestocked(id int, units, quantity uint) *StockRestockedEvent {
	return &StockRestockedEvent{Envelope: newEnvelope(), ID: id, Units: units, Quantity: quantity}
}

func (e *StockRestockedEvent) Topic() string  { return TopicStockRestocked }
func (e *StockRestockedEvent) ProductID() int { return e.ID }

// OrderFulfilledEvent records units debited for an order.
type OrderFulfilledEvent struct {
	Envelope
	ID       int  `json:"product_id"`
	Units    uint `json:"units"`
	Quantity uint `json:"quantity"` // on-hand after the debit
}

func NewOrderFulfilled(id int, units, quantity uint) *OrderFulfilledEvent {
	return &OrderFulfilledEvent{Envelope: newEnvelope(), ID: id, Units: units, Quantity: quantity}
}

func (e *OrderFulfilledEvent) Topic() string  { return TopicOrderFulfilled }
func (e *OrderFulfilledEvent) ProductID() int { return e.ID }
