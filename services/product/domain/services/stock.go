// Package services contains stateless domain services for the product bounded context.
// They decide stock questions purely on domain types and have no external dependencies.
package services

import "github.com/ghuser/supermarket/services/product/domain/models"

// WithinOrderLimit reports whether quantity respects the configured maximum order size.
func WithinOrderLimit(quantity, maxOrderQuantity uint) bool {
	return quantity <= maxOrderQuantity
}

// InStock reports whether p can serve quantity without restocking.
func InStock(p *models.Product, quantity uint) bool {
	return p.Quantity() >= quantity
}

// RestockNeeded returns the units missing to serve quantity, zero when in stock.
func RestockNeeded(p *models.Product, quantity uint) uint {
	if InStock(p, quantity) {
		return 0
	}
	return quantity - p.Quantity()
}

// CoveredAfterRestock reports whether delivered units close the gap for quantity.
func CoveredAfterRestock(p *models.Product, delivered, quantity uint) bool {
	return p.Quantity()+delivered >= quantity
}
