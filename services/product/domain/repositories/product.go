package repositories

import (
	"context"

	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain/models"
)

// ProductRepository is a unit of work over Product aggregates.
// The domain layer owns this interface; infrastructure implements it.
type ProductRepository interface {
	// Add registers a new aggregate in the unit of work. No validation is done
	// and nothing is visible to other callers until Commit.
	Add(ctx context.Context, product *models.Product)

	// Find returns a copy of the stored product, tracked by the unit of work
	// so mutations on it are persisted by the next Commit. Absence is None,
	// not an error; the error is reserved for storage faults.
	Find(ctx context.Context, id int) (result.Maybe[*models.Product], error)

	// Commit persists every pending add and tracked mutation atomically.
	// On failure nothing becomes visible and the unit of work is discarded.
	Commit(ctx context.Context) error

	// Rollback discards the unit of work without persisting anything.
	Rollback(ctx context.Context)
}

// Supplier restocks products from their manufacturer.
type Supplier interface {
	// Order asks for requested units and returns how many were delivered,
	// never more than requested. An error means nothing was delivered.
	Order(ctx context.Context, productID int, manufacturer models.ManufacturerName, requested uint) (uint, error)
}
