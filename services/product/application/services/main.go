package services

import (
	"errors"
	"fmt"

	"github.com/ghuser/supermarket/pkg/app"
	"github.com/ghuser/supermarket/pkg/cache"
	"github.com/ghuser/supermarket/pkg/config"
	"github.com/ghuser/supermarket/services/product/domain/repositories"
	"github.com/ghuser/supermarket/services/product/infrastructure/persistence/memory"
	"github.com/ghuser/supermarket/services/product/infrastructure/persistence/postgres"
	"github.com/ghuser/supermarket/services/product/infrastructure/supplier/httpsupplier"
	"github.com/ghuser/supermarket/services/product/infrastructure/supplier/stubsupplier"
	"github.com/ghuser/supermarket/services/product/infrastructure/supplier/temporalsupplier"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Product *ProductService
}

// New selects the repository and supplier named in a.Config and wires the
// product service. The Redis read cache is enabled when a.Redis is set.
func New(a *app.Application) (*Services, error) {
	repo, err := newRepository(a)
	if err != nil {
		return nil, err
	}
	supplier, err := NewSupplier(a)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithLogger(a.Logger.With("component", "product_service"))}
	if a.Redis != nil {
		opts = append(opts, WithReadCache(cache.NewProductCache(a.Redis)))
	}

	svc, err := NewProductService(repo, supplier, Policy{MaxOrderQuantity: a.Config.MaxOrderQuantity}, opts...)
	if err != nil {
		return nil, err
	}
	return &Services{Product: svc}, nil
}

func newRepository(a *app.Application) (repositories.ProductRepository, error) {
	switch a.Config.StoreBackend {
	case config.StorePostgres:
		if a.Db == nil {
			return nil, errors.New("postgres store selected but no database is connected")
		}
		return postgres.NewProductRepository(a.Db, a.EventBus), nil
	case config.StoreMemory, "":
		return memory.NewProductRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.Config.StoreBackend)
	}
}

// NewSupplier builds the supplier named by SUPPLIER_BACKEND. The worker uses
// it with the http backend to serve restock activities.
func NewSupplier(a *app.Application) (repositories.Supplier, error) {
	cfg := a.Config
	switch cfg.SupplierBackend {
	case config.SupplierHTTP:
		return httpsupplier.New(httpsupplier.OptionsFromConfig(cfg), a.Logger), nil
	case config.SupplierTemporal:
		if a.TemporalClient == nil {
			return nil, errors.New("temporal supplier selected but no temporal client is connected")
		}
		return temporalsupplier.New(a.TemporalClient.Client, a.TemporalClient.TaskQueue), nil
	case config.SupplierStub, "":
		return stubsupplier.New(cfg.SupplierStubAvailable), nil
	default:
		return nil, fmt.Errorf("unknown supplier backend %q", cfg.SupplierBackend)
	}
}
