// Package errhttp maps product domain errors to HTTP status codes.
// Add a case to StatusFor for each new rejection kind.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/supermarket/pkg/httpx"
	"github.com/ghuser/supermarket/services/product/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// 5xx messages are masked when isProduction is set.
func WriteError(w http.ResponseWriter, err error, isProduction bool) {
	status := StatusFor(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, isProduction))
}

// StatusFor returns the HTTP status for err. Faults are checked first so a
// fault wrapping a rejection still maps to 500. Unrecognized errors are 500.
func StatusFor(err error) int {
	switch {
	case domain.IsFault(err):
		return http.StatusInternalServerError // 500
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, domain.ErrOrderTooLarge), errors.Is(err, domain.ErrOutOfStock):
		return http.StatusConflict // 409
	case domain.IsRejection(err):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
