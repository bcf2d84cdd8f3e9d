package services

import (
	"github.com/ghuser/supermarket/pkg/cache"
	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain/models"
)

// ProductDefinition is the plain shape of a product crossing the service
// boundary. Nil Name or Manufacturer means the field was not supplied;
// nil ImporterEmail means the product has no importer.
type ProductDefinition struct {
	ProductID     int     `json:"product_id"`
	Category      string  `json:"category"`
	Name          *string `json:"name"`
	Manufacturer  *string `json:"manufacturer"`
	ImporterEmail *string `json:"importer_email"`
	Quantity      uint    `json:"quantity"`
}

// OrderReceipt is the payload of a fulfilled order.
type OrderReceipt struct {
	ProductID int  `json:"product_id"`
	Ordered   uint `json:"ordered"`
	Restocked uint `json:"restocked"`
	Remaining uint `json:"remaining"`
}

func toDefinition(p *models.Product) ProductDefinition {
	name := p.Name().String()
	manufacturer := p.Manufacturer().String()
	return ProductDefinition{
		ProductID:     p.ID(),
		Category:      p.Category().String(),
		Name:          &name,
		Manufacturer:  &manufacturer,
		ImporterEmail: result.MapMaybe(p.ImporterEmail(), models.Email.String).Ptr(),
		Quantity:      p.Quantity(),
	}
}

func toCached(d ProductDefinition) *cache.CachedProduct {
	return &cache.CachedProduct{
		ID:            d.ProductID,
		Category:      d.Category,
		Name:          deref(d.Name),
		Manufacturer:  deref(d.Manufacturer),
		ImporterEmail: d.ImporterEmail,
		Quantity:      d.Quantity,
	}
}

func fromCached(c *cache.CachedProduct) ProductDefinition {
	name, manufacturer := c.Name, c.Manufacturer
	return ProductDefinition{
		ProductID:     c.ID,
		Category:      c.Category,
		Name:          &name,
		Manufacturer:  &manufacturer,
		ImporterEmail: c.ImporterEmail,
		Quantity:      c.Quantity,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
