package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ghuser/supermarket/pkg/database"
	"github.com/ghuser/supermarket/pkg/events"
	"github.com/ghuser/supermarket/pkg/result"
	domainevents "github.com/ghuser/supermarket/services/product/domain/events"
	"github.com/ghuser/supermarket/services/product/domain/models"
)

const (
	selectProductSQL = `
SELECT id, category, name, manufacturer, importer_email, quantity
FROM products
WHERE id = $1`

	upsertProductSQL = `
INSERT INTO products (id, category, name, manufacturer, importer_email, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
    category       = EXCLUDED.category,
    name           = EXCLUDED.name,
    manufacturer   = EXCLUDED.manufacturer,
    importer_email = EXCLUDED.importer_email,
    quantity       = EXCLUDED.quantity,
    updated_at     = now()`
)

// ProductRepository implements repositories.ProductRepository against PostgreSQL.
// Pending aggregates are held in memory until Commit, which upserts them and
// publishes their domain events in a single transaction.
type ProductRepository struct {
	db  *database.Database
	bus *events.EventBus

	mu      sync.Mutex
	pending map[int]*models.Product
}

// NewProductRepository returns a ProductRepository backed by the given pool.
// bus may be nil, in which case domain events are dropped.
func NewProductRepository(db *database.Database, bus *events.EventBus) *ProductRepository {
	return &ProductRepository{db: db, bus: bus, pending: make(map[int]*models.Product)}
}

// Add registers product for the next Commit.
func (r *ProductRepository) Add(_ context.Context, product *models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[product.ID()] = product
}

// Find returns the tracked product when the unit of work holds id, else
// loads it. Missing rows are None.
func (r *ProductRepository) Find(ctx context.Context, id int) (result.Maybe[*models.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pending[id]; ok {
		return result.Some(p), nil
	}

	var row productRow
	err := r.db.DB().QueryRowContext(ctx, selectProductSQL, id).Scan(
		&row.ID, &row.Category, &row.Name, &row.Manufacturer, &row.ImporterEmail, &row.Quantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return result.None[*models.Product](), nil
	}
	if err != nil {
		return result.None[*models.Product](), fmt.Errorf("query product: %w", err)
	}

	p, err := row.toProduct()
	if err != nil {
		return result.None[*models.Product](), fmt.Errorf("load product %d: %w", id, err)
	}
	r.pending[id] = p
	return result.Some(p), nil
}

// Commit writes every pending product and its events atomically. The unit of
// work is discarded whether or not the transaction succeeds.
func (r *ProductRepository) Commit(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := r.pending
	r.pending = make(map[int]*models.Product)

	ids := make([]int, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			p := pending[id]
			if err := upsert(ctx, tx, p); err != nil {
				return err
			}
			if err := r.publish(ctx, tx, p.DomainEvents()); err != nil {
				return fmt.Errorf("publish events for product %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, p := range pending {
		p.ClearEvents()
	}
	return nil
}

// Rollback discards the unit of work.
func (r *ProductRepository) Rollback(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = make(map[int]*models.Product)
}

func upsert(ctx context.Context, tx *sql.Tx, p *models.Product) error {
	var email sql.NullString
	if e := p.ImporterEmail(); e.HasValue() {
		email = sql.NullString{String: e.Value().String(), Valid: true}
	}
	if _, err := tx.ExecContext(ctx, upsertProductSQL,
		p.ID(),
		p.Category().String(),
		p.Name().String(),
		p.Manufacturer().String(),
		email,
		int64(p.Quantity()),
	); err != nil {
		return fmt.Errorf("upsert product %d: %w", p.ID(), err)
	}
	return nil
}

func (r *ProductRepository) publish(ctx context.Context, tx *sql.Tx, evts []domainevents.Event) error {
	if r.bus == nil {
		return nil
	}
	for _, e := range evts {
		env := e.Meta()
		msg, err := events.NewMessage(env.EventID.String(), env.Version, e)
		if err != nil {
			return err
		}
		if err := r.bus.PublishTx(ctx, tx, e.Topic(), msg); err != nil {
			return err
		}
	}
	return nil
}

// productRow is one row of the products table.
type productRow struct {
	ID            int
	Category      string
	Name          string
	Manufacturer  string
	ImporterEmail sql.NullString
	Quantity      int64
}

// toProduct revalidates stored values through the domain constructors so a
// corrupt row surfaces as an error instead of an invalid aggregate.
func (row productRow) toProduct() (*models.Product, error) {
	if row.Quantity < 0 {
		return nil, fmt.Errorf("negative quantity %d", row.Quantity)
	}

	name := models.NewProductName(result.Some(row.Name))
	manufacturer := models.NewManufacturerName(result.Some(row.Manufacturer))
	category := models.ParseCategory(row.Category)
	email := models.NewOptionalEmail(emailOf(row.ImporterEmail))

	if err := result.Combine(name, manufacturer, category, email); err.IsFailure() {
		return nil, err.Err()
	}
	return models.ReconstructProduct(
		row.ID,
		category.Value(),
		name.Value(),
		manufacturer.Value(),
		email.Value(),
		uint(row.Quantity),
	), nil
}

func emailOf(s sql.NullString) result.Maybe[string] {
	if !s.Valid {
		return result.None[string]()
	}
	return result.Some(s.String)
}
