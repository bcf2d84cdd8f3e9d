package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/supermarket/services/product/application/handlers"
	appsvcs "github.com/ghuser/supermarket/services/product/application/services"
)

// ProductRoutes registers product endpoints on the provided chi router.
func ProductRoutes(r chi.Router, svcs *appsvcs.Services, isProduction bool) {
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", handlers.NewPostProductHandler(svcs, isProduction).Execute)
		r.Get("/{id}", handlers.NewGetProductHandler(svcs, isProduction).Execute)
		r.Post("/{id}/orders", handlers.NewPostOrderHandler(svcs, isProduction).Execute)
	})
}
