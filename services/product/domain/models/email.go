package models

import (
	"regexp"

	"github.com/ghuser/supermarket/pkg/result"
)

// emailPattern requires a non-empty local part, a single '@' and a non-empty domain.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+$`)

// Email is an importer contact address. Only the shape local@domain is
// checked; deliverability is not.
type Email struct {
	value string
}

// NewEmail validates raw and wraps it.
func NewEmail(raw result.Maybe[string]) result.Result[Email] {
	checked := raw.ToResult(invalid("email is invalid")).
		Ensure(notBlank, invalid("email must not be empty")).
		Ensure(emailPattern.MatchString, invalid("email is invalid"))

	return result.Map(checked, func(s string) Email {
		return Email{value: s}
	})
}

// NewOptionalEmail validates raw only when present. An absent address is a
// success holding None.
func NewOptionalEmail(raw result.Maybe[string]) result.Result[result.Maybe[Email]] {
	if raw.HasNoValue() {
		return result.Ok(result.None[Email]())
	}
	return result.Map(NewEmail(raw), result.Some[Email])
}

func (e Email) String() string {
	return e.value
}
