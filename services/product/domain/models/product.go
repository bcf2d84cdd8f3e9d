package models

import (
	"fmt"

	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain/events"
)

// Product is the inventory aggregate. Its id is assigned by the caller.
// Quantity only changes through Restock and Debit, which the order pipeline
// calls after every check has passed.
type Product struct {
	id            int
	category      Category
	name          ProductName
	manufacturer  ManufacturerName
	importerEmail result.Maybe[Email]
	quantity      uint

	events []events.Event
}

// NewProduct builds a product from validated parts and records ProductCreated.
func NewProduct(
	id int,
	category Category,
	name ProductName,
	manufacturer ManufacturerName,
	importerEmail result.Maybe[Email],
	quantity uint,
) *Product {
	p := ReconstructProduct(id, category, name, manufacturer, importerEmail, quantity)
	p.record(events.NewProductCreated(
		id,
		category.String(),
		name.String(),
		manufacturer.String(),
		result.MapMaybe(importerEmail, Email.String).Ptr(),
		quantity,
	))
	return p
}

// ReconstructProduct rebuilds a stored product without recording events.
// Repositories use it when loading rows.
func ReconstructProduct(
	id int,
	category Category,
	name ProductName,
	manufacturer ManufacturerName,
	importerEmail result.Maybe[Email],
	quantity uint,
) *Product {
	return &Product{
		id:            id,
		category:      category,
		name:          name,
		manufacturer:  manufacturer,
		importerEmail: importerEmail,
		quantity:      quantity,
	}
}

func (p *Product) ID() int                            { return p.id }
func (p *Product) Category() Category                 { return p.category }
func (p *Product) Name() ProductName                  { return p.name }
func (p *Product) Manufacturer() ManufacturerName     { return p.manufacturer }
func (p *Product) ImporterEmail() result.Maybe[Email] { return p.importerEmail }
func (p *Product) Quantity() uint                     { return p.quantity }

// Restock adds units delivered by the supplier.
func (p *Product) Restock(units uint) {
	if units == 0 {
		return
	}
	p.quantity += units
	p.record(events.NewStockRestocked(p.id, units, p.quantity))
}

// Debit removes units for a fulfilled order. Callers must have checked that
// enough stock is on hand; debiting more than Quantity panics.
func (p *Product) Debit(units uint) {
	if units > p.quantity {
		panic(fmt.Sprintf("models: debit of %d exceeds stock %d for product %d", units, p.quantity, p.id))
	}
	p.quantity -= units
	p.record(events.NewOrderFulfilled(p.id, units, p.quantity))
}

// Clone returns an independent copy, including pending events.
func (p *Product) Clone() *Product {
	c := *p
	c.events = append([]events.Event(nil), p.events...)
	return &c
}

// DomainEvents returns the events recorded since the last ClearEvents.
func (p *Product) DomainEvents() []events.Event {
	return p.events
}

// ClearEvents drops recorded events once they have been published.
func (p *Product) ClearEvents() {
	p.events = nil
}

func (p *Product) record(e events.Event) {
	p.events = append(p.events, e)
}
