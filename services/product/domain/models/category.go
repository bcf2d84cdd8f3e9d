package models

import (
	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain"
)

// Category classifies a product on the shelf.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryBeverages   Category = "beverages"
	CategoryHousehold   Category = "household"
	CategoryElectronics Category = "electronics"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryFood, CategoryBeverages, CategoryHousehold, CategoryElectronics}

// ParseCategory maps a raw category name onto the closed set.
func ParseCategory(s string) result.Result[Category] {
	for _, c := range Categories {
		if string(c) == s {
			return result.Ok(c)
		}
	}
	return result.Fail[Category](domain.Reject(domain.ErrInvalidProduct, "category %q is invalid", s))
}

func (c Category) String() string {
	return string(c)
}
