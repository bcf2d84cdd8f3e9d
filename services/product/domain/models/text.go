package models

import (
	"strings"
	"unicode/utf8"

	"github.com/ghuser/supermarket/pkg/result"
	"github.com/ghuser/supermarket/services/product/domain"
)

// requiredText applies the shared rules for bounded text fields in order:
// presence, non-blank, then length in runes. The first failing rule wins.
func requiredText(raw result.Maybe[string], field string, maxLen int) result.Result[string] {
	return raw.ToResult(invalid("%s is invalid", field)).
		Ensure(notBlank, invalid("%s must not be empty", field)).
		Ensure(func(s string) bool {
			return utf8.RuneCountInString(s) <= maxLen
		}, invalid("%s is too long", field))
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func invalid(format string, args ...any) error {
	return domain.Reject(domain.ErrInvalidProduct, format, args...)
}
