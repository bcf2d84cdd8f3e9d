package models

import "github.com/ghuser/supermarket/pkg/result"

// MaxManufacturerNameLength is the longest accepted manufacturer name, in characters.
const MaxManufacturerNameLength = 256

// ManufacturerName is a validated manufacturer name.
type ManufacturerName struct {
	value string
}

// NewManufacturerName validates raw and wraps it.
func NewManufacturerName(raw result.Maybe[string]) result.Result[ManufacturerName] {
	return result.Map(requiredText(raw, "manufacturer name", MaxManufacturerNameLength), func(s string) ManufacturerName {
		return ManufacturerName{value: s}
	})
}

func (n ManufacturerName) String() string {
	return n.value
}
