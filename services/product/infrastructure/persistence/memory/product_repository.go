// Package memory is an in-process ProductRepository. State lives only as
// long as the process; it backs STORE_BACKEND=memory and the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain/events"
	"github.com/ghuser/supermarket/services/product/domain/models"
)

// ProductRepository keeps committed products in a map and tracks the
// current unit of work separately. Find hands out copies, so nothing a
// caller does is visible to others until Commit.
type ProductRepository struct {
	mu        sync.Mutex
	committed map[int]*models.Product
	pending   map[int]*models.Product
	published []events.Event
	commitErr error
}

// NewProductRepository returns an empty repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		committed: make(map[int]*models.Product),
		pending:   make(map[int]*models.Product),
	}
}

// Add registers product in the unit of work, replacing any pending product
// with the same id.
func (r *ProductRepository) Add(_ context.Context, product *models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[product.ID()] = product
}

// Find returns the tracked copy when the unit of work already holds id,
// otherwise a fresh copy of the committed product.
func (r *ProductRepository) Find(ctx context.Context, id int) (result.Maybe[*models.Product], error) {
	if err := ctx.Err(); err != nil {
		return result.None[*models.Product](), err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pending[id]; ok {
		return result.Some(p), nil
	}
	stored, ok := r.committed[id]
	if !ok {
		return result.None[*models.Product](), nil
	}
	p := stored.Clone()
	r.pending[id] = p
	return result.Some(p), nil
}

// Commit moves every pending product into the committed set. When commits
// are set to fail, nothing is stored. The unit of work is discarded either way.
func (r *ProductRepository) Commit(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.reset()

	if err := ctx.Err(); err != nil {
		return err
	}
	if r.commitErr != nil {
		return r.commitErr
	}

	for id, p := range r.pending {
		r.published = append(r.published, p.DomainEvents()...)
		p.ClearEvents()
		r.committed[id] = p.Clone()
	}
	return nil
}

// Rollback discards the unit of work.
func (r *ProductRepository) Rollback(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
}

// FailCommits makes every following Commit return err. Pass nil to restore.
func (r *ProductRepository) FailCommits(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commitErr = err
}

// Stored returns a copy of the committed product, bypassing the unit of work.
func (r *ProductRepository) Stored(id int) (*models.Product, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.committed[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// Published returns the domain events of every successful commit, in order.
func (r *ProductRepository) Published() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.published...)
}

func (r *ProductRepository) reset() {
	r.pending = make(map[int]*models.Product)
}
