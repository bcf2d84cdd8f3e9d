// Package validator decodes and validates JSON request bodies with
// go-playground/validator tags. Field names in messages follow the json tag.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/supermarket/pkg/httpx"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// fieldMessages renders a failed tag. Tags not listed fall back to a generic message.
var fieldMessages = map[string]func(validator.FieldError) string{
	"required": func(validator.FieldError) string { return "This field is required" },
	"email":    func(validator.FieldError) string { return "Must be a valid email address" },
	"min":      func(e validator.FieldError) string { return "Minimum length is " + e.Param() },
	"max":      func(e validator.FieldError) string { return "Maximum length is " + e.Param() },
	"gt":       func(e validator.FieldError) string { return "Must be greater than " + e.Param() },
	"gte":      func(e validator.FieldError) string { return "Must be greater than or equal to " + e.Param() },
	"lte":      func(e validator.FieldError) string { return "Must be less than or equal to " + e.Param() },
	"oneof":    func(e validator.FieldError) string { return "Must be one of: " + e.Param() },
}

// Validate runs struct-level validation.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors maps each failing field to a readable message. Any
// other error yields an empty map.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, e := range ve {
		if msg, ok := fieldMessages[e.Tag()]; ok {
			out[e.Field()] = msg(e)
			continue
		}
		out[e.Field()] = fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
	return out
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes the error response itself if either step fails: 400 for malformed
// JSON, 413 past the body limit, 422 with per-field messages for tag failures.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		httpx.ValidationError(w, FormatValidationErrors(err))
		return nil, false
	}
	return &req, true
}
