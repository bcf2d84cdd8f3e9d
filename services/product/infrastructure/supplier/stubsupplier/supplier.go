// Package stubsupplier is an in-process supplier with a fixed pool of units.
// It backs development runs and the service tests.
package stubsupplier

import (
	"context"
	"errors"
	"sync"

	"github.com/ghuser/supermarket/services/product/domain/models"
)

// ErrNotEnoughStock is returned by Order while Fail is set.
var ErrNotEnoughStock = errors.New("not enough stock")

// Supplier hands out units from Available until it runs dry.
type Supplier struct {
	mu        sync.Mutex
	available uint
	fail      bool
	calls     int
}

// New returns a supplier holding available units.
func New(available uint) *Supplier {
	return &Supplier{available: available}
}

// Order delivers min(requested, available) units and removes them from the pool.
func (s *Supplier) Order(ctx context.Context, _ int, _ models.ManufacturerName, requested uint) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.fail {
		return 0, ErrNotEnoughStock
	}

	delivered := min(requested, s.available)
	s.available -= delivered
	return delivered, nil
}

// SetAvailable replaces the pool size.
func (s *Supplier) SetAvailable(units uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = units
}

// SetFail makes every following Order fail.
func (s *Supplier) SetFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

// Available reports the units left in the pool.
func (s *Supplier) Available() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

// Calls reports how many times Order has been invoked.
func (s *Supplier) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
