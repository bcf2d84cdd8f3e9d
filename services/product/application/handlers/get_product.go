package handlers

import (
	"net/http"

	appsvcs "github.com/ghuser/supermarket/services/product/application/services"
)

// GetProductHandler handles GET /api/products/{id}.
type GetProductHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

func NewGetProductHandler(svc *appsvcs.Services, isProduction bool) *GetProductHandler {
	return &GetProductHandler{svc: svc, isProduction: isProduction}
}

// Execute returns the product definition.
//
//	@Summary		Get product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		int	true	"Product id"
//	@Success		200	{object}	services.ProductDefinition
//	@Failure		400	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/products/{id} [get]
func (h *GetProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	writeResponse(w, r, h.svc.Product.GetProduct(r.Context(), id), http.StatusOK, h.isProduction)
}
