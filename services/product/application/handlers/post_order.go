package handlers

import (
	"net/http"

	pkgvalidator "github.com/ghuser/supermarket/pkg/validator"
	appsvcs "github.com/ghuser/supermarket/services/product/application/services"
)

// PlaceOrderRequest is the request body for POST /api/products/{id}/orders.
type PlaceOrderRequest struct {
	Quantity uint `json:"quantity" validate:"required,gt=0" example:"500"`
}

// PostOrderHandler handles POST /api/products/{id}/orders.
type PostOrderHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewPostOrderHandler returns a PostOrderHandler backed by the given services.
func NewPostOrderHandler(svc *appsvcs.Services, isProduction bool) *PostOrderHandler {
	return &PostOrderHandler{svc: svc, isProduction: isProduction}
}

// Execute fulfils the order, restocking from the supplier when needed, and
// answers 200 with an OrderReceipt. Order limits and stock shortfalls are 409.
//
//	@Summary		Place order
//	@Description	Debits stock for the product, ordering the shortfall from the supplier first
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Product id"
//	@Param			request	body		PlaceOrderRequest	true	"Order"
//	@Success		200		{object}	services.OrderReceipt
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Failure		422		{object}	httpx.ErrorBody
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/products/{id}/orders [post]
func (h *PostOrderHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[PlaceOrderRequest](w, r)
	if !ok {
		return
	}
	writeResponse(w, r, h.svc.Product.Order(r.Context(), id, req.Quantity), http.StatusOK, h.isProduction)
}
