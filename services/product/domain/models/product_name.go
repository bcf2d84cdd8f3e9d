package models

import "github.com/ghuser/supermarket/pkg/result"

// MaxProductNameLength is the longest accepted product name, in characters.
const MaxProductNameLength = 100

// ProductName is a validated, non-blank product name of at most
// MaxProductNameLength characters. Compare with ==.
type ProductName struct {
	value string
}

// NewProductName validates raw and wraps it. No trimming or case folding is applied.
func NewProductName(raw result.Maybe[string]) result.Result[ProductName] {
	return result.Map(requiredText(raw, "product name", MaxProductNameLength), func(s string) ProductName {
		return ProductName{value: s}
	})
}

// String returns the name exactly as it was supplied.
func (n ProductName) String() string {
	return n.value
}
