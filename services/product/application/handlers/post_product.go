package handlers

import (
	"net/http"

	pkgvalidator "github.com/ghuser/supermarket/pkg/validator"
	appsvcs "github.com/ghuser/supermarket/services/product/application/services"
)

// CreateProductRequest is the request body for POST /api/products. Name,
// manufacturer, category and email rules are enforced by the domain so the
// client receives the domain's messages. ProductID is a pointer so that 0
// stays a valid id while an absent one is rejected.
type CreateProductRequest struct {
	ProductID     *int    `json:"product_id" validate:"required" example:"1"`
	Category      string  `json:"category" example:"food"`
	Name          *string `json:"name" example:"Oranges"`
	Manufacturer  *string `json:"manufacturer" example:"Jaffa"`
	ImporterEmail *string `json:"importer_email" example:"jaffa@gmail.com"`
	Quantity      uint    `json:"quantity" example:"1000"`
}

// PostProductHandler handles POST /api/products.
type PostProductHandler struct {
	svc          *appsvcs.Services
	isProduction bool
}

// NewPostProductHandler returns a PostProductHandler backed by the given services.
func NewPostProductHandler(svc *appsvcs.Services, isProduction bool) *PostProductHandler {
	return &PostProductHandler{svc: svc, isProduction: isProduction}
}

// Execute creates a product and answers 201 with its definition. An existing
// id is replaced.
//
//	@Summary		Create product
//	@Description	Adds a product to the catalogue, replacing any product with the same id
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateProductRequest	true	"Product definition"
//	@Success		201		{object}	services.ProductDefinition
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		413		{object}	httpx.ErrorBody
//	@Failure		422		{object}	httpx.ErrorBody
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/products [post]
func (h *PostProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateProductRequest](w, r)
	if !ok {
		return
	}

	resp := h.svc.Product.CreateProduct(r.Context(), appsvcs.ProductDefinition{
		ProductID:     *req.ProductID,
		Category:      req.Category,
		Name:          req.Name,
		Manufacturer:  req.Manufacturer,
		ImporterEmail: req.ImporterEmail,
		Quantity:      req.Quantity,
	})
	writeResponse(w, r, resp, http.StatusCreated, h.isProduction)
}
