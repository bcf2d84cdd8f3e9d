package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/supermarket/services/product/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", domain.NotFound(2), http.StatusNotFound},
		{"invalid product", domain.Reject(domain.ErrInvalidProduct, "email is invalid"), http.StatusUnprocessableEntity},
		{"order too large", domain.Reject(domain.ErrOrderTooLarge, "the order is too large"), http.StatusConflict},
		{"out of stock", domain.Reject(domain.ErrOutOfStock, "the product is out of stock"), http.StatusConflict},
		{"wrapped not found", fmt.Errorf("order: %w", domain.NotFound(1)), http.StatusNotFound},
		{"other rejection", domain.Reject(errors.New("quota"), "daily quota reached"), http.StatusBadRequest},
		{"supplier fault", domain.Fault(domain.ErrSupplierFailed, errors.New("timeout")), http.StatusInternalServerError},
		{"fault wrapping rejection", domain.Fault(domain.ErrRepositoryFailed, domain.Reject(domain.ErrInvalidProduct, "bad row")), http.StatusInternalServerError},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, got)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, domain.NotFound(7), false)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if body["error"] != "product with id 7 was not found" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
	if w.Header().Get("Content-Type") == "" {
		t.Fatal("Content-Type header not set")
	}
}

func TestWriteError_MasksFaultsInProduction(t *testing.T) {
	fault := domain.Fault(domain.ErrCommitFailed, errors.New("pq: password authentication failed"))

	tests := []struct {
		name       string
		production bool
		want       string
	}{
		{"development shows cause", false, fault.Error()},
		{"production masks cause", true, http.StatusText(http.StatusInternalServerError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, fault, tt.production)

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("response body is not valid JSON: %v", err)
			}
			if body["error"] != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, body["error"])
			}
		})
	}
}

func TestWriteError_RejectionsNeverMasked(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, domain.Reject(domain.ErrOutOfStock, "the product is out of stock"), true)

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "the product is out of stock" {
		t.Fatalf("unexpected error message: %q", body["error"])
	}
}
