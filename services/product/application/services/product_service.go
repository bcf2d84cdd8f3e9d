package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/supermarket/pkg/cache"
	"github.com/ghuser/supermarket/pkg/logger"
	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain"
	"github.com/ghuser/supermarket/services/product/domain/models"
	"github.com/ghuser/supermarket/services/product/domain/repositories"
	domainsvcs "github.com/ghuser/supermarket/services/product/domain/services"
)

// DefaultMaxOrderQuantity is used when Policy.MaxOrderQuantity is zero.
const DefaultMaxOrderQuantity = 10000

// Policy holds the business limits applied to orders.
type Policy struct {
	MaxOrderQuantity uint
}

// ReadCache is the product read model used by GetProduct. A miss is
// reported as redis.Nil; any other error is logged and treated as a miss.
type ReadCache interface {
	Get(ctx context.Context, id int) (*cache.CachedProduct, error)
	Set(ctx context.Context, p *cache.CachedProduct) error
	Delete(ctx context.Context, id int) error
}

// Option configures a ProductService.
type Option func(*ProductService)

// WithLogger sets the service logger. Defaults to a discarding logger.
func WithLogger(log logger.Logger) Option {
	return func(s *ProductService) { s.log = log }
}

// WithReadCache enables the read-through cache for GetProduct.
func WithReadCache(c ReadCache) Option {
	return func(s *ProductService) { s.cache = c }
}

// ProductService creates products, serves them and fulfils orders.
//
// Every operation runs as one unit of work on the repository. Operations are
// serialized so an aggregate loaded by one call is never mutated by another
// before it is committed or rolled back.
type ProductService struct {
	mu sync.Mutex

	repo     repositories.ProductRepository
	supplier repositories.Supplier
	policy   Policy
	cache    ReadCache
	log      logger.Logger
	tracer   trace.Tracer
	metrics  *serviceMetrics
}

// NewProductService wires the service with its collaborators.
func NewProductService(
	repo repositories.ProductRepository,
	supplier repositories.Supplier,
	policy Policy,
	opts ...Option,
) (*ProductService, error) {
	if policy.MaxOrderQuantity == 0 {
		policy.MaxOrderQuantity = DefaultMaxOrderQuantity
	}

	m, err := newServiceMetrics()
	if err != nil {
		return nil, fmt.Errorf("product service metrics: %w", err)
	}

	s := &ProductService{
		repo:     repo,
		supplier: supplier,
		policy:   policy,
		log:      logger.NewWithWriter(io.Discard, "error"),
		tracer:   otel.Tracer(instrumentationName),
		metrics:  m,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateProduct validates def, adds the product and commits.
// Name, manufacturer and importer email are validated independently; the
// first failure in that order is reported.
func (s *ProductService) CreateProduct(ctx context.Context, def ProductDefinition) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "product.create",
		trace.WithAttributes(attribute.Int("product.id", def.ProductID)))
	defer span.End()

	name := models.NewProductName(result.FromPtr(def.Name))
	manufacturer := models.NewManufacturerName(result.FromPtr(def.Manufacturer))
	email := models.NewOptionalEmail(result.FromPtr(def.ImporterEmail))
	category := models.ParseCategory(def.Category)

	product := result.Map(result.Combine(name, manufacturer, email, category), func(result.Unit) *models.Product {
		return models.NewProduct(def.ProductID, category.Value(), name.Value(), manufacturer.Value(), email.Value(), def.Quantity)
	})
	added := result.Tap(product, func(p *models.Product) {
		s.repo.Add(ctx, p)
	})
	committed := result.OnSuccess(added, func(p *models.Product) result.Result[*models.Product] {
		return s.commit(ctx, p)
	})

	return result.OnBoth(committed, func(r result.Result[*models.Product]) Response {
		return s.finish(ctx, span, "create", respond(result.Map(r, toDefinition)))
	})
}

// GetProduct returns the definition of product id, or a rejection when it
// does not exist. Reads go through the cache when one is configured.
func (s *ProductService) GetProduct(ctx context.Context, id int) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "product.get",
		trace.WithAttributes(attribute.Int("product.id", id)))
	defer span.End()

	if def, hit := s.cached(ctx, id); hit {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return s.finish(ctx, span, "get", ok(def))
	}

	def := result.Map(s.find(ctx, id), toDefinition)
	s.repo.Rollback(ctx)

	def = result.Tap(def, func(d ProductDefinition) {
		s.store(ctx, d)
	})
	return s.finish(ctx, span, "get", respond(def))
}

// Order debits quantity units of product id, restocking from the supplier
// first when stock is short.
//
//  1. the product must exist
//  2. quantity must not exceed the policy maximum
//  3. with enough stock on hand, go straight to the debit
//  4. otherwise ask the supplier for the missing units
//  5. the delivery must close the gap, else the order is out of stock
//  6. debit, then commit
//
// Stock is only mutated after every check has passed, and Commit runs only
// when all steps succeeded.
func (s *ProductService) Order(ctx context.Context, id int, quantity uint) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.tracer.Start(ctx, "product.order", trace.WithAttributes(
		attribute.Int("product.id", id),
		attribute.Int64("order.quantity", int64(quantity)),
	))
	defer span.End()

	var restocked uint

	located := s.find(ctx, id)
	bounded := located.Ensure(func(*models.Product) bool {
		return domainsvcs.WithinOrderLimit(quantity, s.policy.MaxOrderQuantity)
	}, domain.Reject(domain.ErrOrderTooLarge, "the order is too large"))
	stocked := result.OnSuccess(bounded, func(p *models.Product) result.Result[*models.Product] {
		return result.Map(s.restock(ctx, p, quantity), func(units uint) *models.Product {
			restocked = units
			return p
		})
	})
	debited := result.Tap(stocked, func(p *models.Product) {
		p.Debit(quantity)
	})
	committed := result.OnSuccess(debited, func(p *models.Product) result.Result[*models.Product] {
		return s.commit(ctx, p)
	})

	return result.OnBoth(committed, func(r result.Result[*models.Product]) Response {
		receipt := result.Map(r, func(p *models.Product) OrderReceipt {
			return OrderReceipt{ProductID: p.ID(), Ordered: quantity, Restocked: restocked, Remaining: p.Quantity()}
		})
		return s.finish(ctx, span, "order", respond(receipt))
	})
}

// restock tops p up when it cannot serve quantity and returns the units
// applied. A supplier fault leaves p untouched.
func (s *ProductService) restock(ctx context.Context, p *models.Product, quantity uint) result.Result[uint] {
	excess := domainsvcs.RestockNeeded(p, quantity)
	if excess == 0 {
		return result.Ok[uint](0)
	}

	ctx, span := s.tracer.Start(ctx, "product.restock", trace.WithAttributes(
		attribute.Int("product.id", p.ID()),
		attribute.Int64("restock.requested", int64(excess)),
	))
	defer span.End()

	ordered, err := s.supplier.Order(ctx, p.ID(), p.Manufacturer(), excess)
	delivered := result.MapErr(result.FromTuple(ordered, err), func(err error) error {
		return domain.Fault(domain.ErrSupplierFailed, err)
	}).Ensure(func(n uint) bool {
		return n <= excess
	}, domain.Fault(domain.ErrSupplierFailed, fmt.Errorf("delivered %d units, requested %d", ordered, excess)))

	covered := delivered.Ensure(func(n uint) bool {
		return domainsvcs.CoveredAfterRestock(p, n, quantity)
	}, domain.Reject(domain.ErrOutOfStock, "the product is out of stock"))

	return result.Tap(covered, func(n uint) {
		span.SetAttributes(attribute.Int64("restock.delivered", int64(n)))
		p.Restock(n)
		s.metrics.restocked(ctx, n)
	})
}

// find loads product id. Storage faults become internal errors and absence
// becomes a not-found rejection.
func (s *ProductService) find(ctx context.Context, id int) result.Result[*models.Product] {
	found, err := s.repo.Find(ctx, id)
	if err != nil {
		return result.Fail[*models.Product](domain.Fault(domain.ErrRepositoryFailed, err))
	}
	return found.ToResult(domain.NotFound(id))
}

// commit persists the unit of work and invalidates the cached read model for p.
func (s *ProductService) commit(ctx context.Context, p *models.Product) result.Result[*models.Product] {
	committed := result.Try(func() error {
		return s.repo.Commit(ctx)
	})
	committed = result.MapErr(committed, func(err error) error {
		return domain.Fault(domain.ErrCommitFailed, err)
	})
	return result.Map(committed, func(result.Unit) *models.Product {
		s.evict(ctx, p)
		return p
	})
}

// finish closes an operation: failures roll the unit of work back, and the
// outcome is logged, counted and recorded on the span.
func (s *ProductService) finish(ctx context.Context, span trace.Span, op string, resp Response) Response {
	s.metrics.operation(ctx, op, resp.Outcome)
	span.SetAttributes(attribute.String("outcome", resp.Outcome.String()))

	switch resp.Outcome {
	case OutcomeRejected:
		s.repo.Rollback(ctx)
		s.log.InfoContext(ctx, "product request rejected", "operation", op, "reason", resp.Message())
	case OutcomeInternalError:
		s.repo.Rollback(ctx)
		span.RecordError(resp.Err)
		span.SetStatus(codes.Error, resp.Message())
		s.log.ErrorContext(ctx, "product request failed", "operation", op, "error", resp.Err)
	default:
		s.log.DebugContext(ctx, "product request completed", "operation", op)
	}
	return resp
}

func (s *ProductService) cached(ctx context.Context, id int) (ProductDefinition, bool) {
	if s.cache == nil {
		return ProductDefinition{}, false
	}
	c, err := s.cache.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		}
		return ProductDefinition{}, false
	}
	return fromCached(c), true
}

func (s *ProductService) store(ctx context.Context, d ProductDefinition) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, toCached(d)); err != nil {
		s.log.WarnContext(ctx, "product cache write failed", "product_id", d.ProductID, "error", err)
	}
}

// evict drops the cached read model for p. When the delete fails the entry
// is overwritten with the committed state instead.
func (s *ProductService) evict(ctx context.Context, p *models.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, p.ID()); err != nil {
		s.log.WarnContext(ctx, "product cache evict failed, refreshing", "product_id", p.ID(), "error", err)
		s.store(ctx, toDefinition(p))
	}
}
